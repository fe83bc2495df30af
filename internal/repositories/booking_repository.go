package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, booking_number, owner_id, walker_id, pet_id, service_type,
	       start_at, end_at, duration_min,
	       base_price, COALESCE(additional_services, '[]'), subtotal, tax, total,
	       status, payment_status, COALESCE(notes, ''),
	       cancelled_at, created_at, updated_at`

func scanBooking(row scanner) (models.Booking, error) {
	var (
		b       models.Booking
		rawAdds []byte
		status  string
		payStat string
	)
	if err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.OwnerID,
		&b.WalkerID,
		&b.PetID,
		&b.ServiceType,
		&b.StartAt,
		&b.EndAt,
		&b.DurationMin,
		&b.BasePrice,
		&rawAdds,
		&b.Subtotal,
		&b.Tax,
		&b.Total,
		&status,
		&payStat,
		&b.Notes,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingStatus(status)
	b.PaymentStatus = models.PaymentStatus(payStat)
	if len(rawAdds) > 0 {
		_ = json.Unmarshal(rawAdds, &b.AdditionalServices)
	}
	return b, nil
}

// Create inserts a new booking and fills in its generated id.
func (r BookingRepository) Create(b *models.Booking) error {
	adds, err := json.Marshal(b.AdditionalServices)
	if err != nil {
		return err
	}
	res, err := r.db().Exec(`
		INSERT INTO bookings
			(booking_number, owner_id, walker_id, pet_id, service_type,
			 start_at, end_at, duration_min,
			 base_price, additional_services, subtotal, tax, total,
			 status, payment_status, notes)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.BookingNumber, b.OwnerID, b.WalkerID, b.PetID, b.ServiceType,
		b.StartAt, b.EndAt, b.DurationMin,
		b.BasePrice, adds, b.Subtotal, b.Tax, b.Total,
		string(b.Status), string(b.PaymentStatus), b.Notes,
	)
	if err != nil {
		return err
	}
	b.ID, err = res.LastInsertId()
	return err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	return r.getByID(r.db(), id)
}

// GetByIDTx reads the booking inside a caller-owned transaction so the
// status check and the later optimistic write see related state.
func (r BookingRepository) GetByIDTx(q Runner, id int64) (models.Booking, error) {
	return r.getByID(q, id)
}

func (r BookingRepository) getByID(q Runner, id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, fmt.Errorf("invalid booking id")
	}
	row := q.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	return scanBooking(row)
}

// ListForUser returns the bookings visible to a caller: owners see their
// own, walkers see the ones assigned to them, admins see everything.
func (r BookingRepository) ListForUser(userID int64, role string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []any{}
	switch strings.ToUpper(role) {
	case "OWNER":
		query += ` WHERE owner_id=?`
		args = append(args, userID)
	case "WALKER":
		query += ` WHERE walker_id=?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus flips booking status only when the stored status still
// matches the expected pre-transition value. Returns false when another
// writer won the race; the caller must treat that as a stale-state
// conflict, never as success.
func (r BookingRepository) UpdateStatus(q Runner, id int64, from, to models.BookingStatus) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("invalid booking id")
	}
	sets := []string{"status=?", "updated_at=NOW()"}
	args := []any{string(to)}
	if to == models.BookingCancelled {
		sets = append(sets, "cancelled_at=NOW()")
	}
	args = append(args, id, string(from))

	res, err := q.Exec(`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id=? AND status=?`, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// UpdatePaymentStatus sets the booking's payment_status column.
func (r BookingRepository) UpdatePaymentStatus(q Runner, id int64, status models.PaymentStatus) error {
	if id <= 0 {
		return fmt.Errorf("invalid booking id")
	}
	_, err := q.Exec(`UPDATE bookings SET payment_status=?, updated_at=NOW() WHERE id=?`, string(status), id)
	return err
}
