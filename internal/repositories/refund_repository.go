package repositories

import (
	"database/sql"
	"fmt"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain/models"
)

type RefundRepository struct {
	DB *sql.DB
}

func (r RefundRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create inserts the refund record. Refunds are immutable; there is no
// update path. The unique key on booking_id enforces at most one refund
// per booking.
func (r RefundRepository) Create(q Runner, ref *models.Refund) error {
	if ref.BookingID <= 0 {
		return fmt.Errorf("invalid booking id")
	}
	if ref.Amount < 0 {
		return fmt.Errorf("refund amount must not be negative")
	}
	res, err := q.Exec(`
		INSERT INTO refunds (booking_id, amount, status, method, estimated_arrival, processed_at)
		VALUES (?,?,?,?,?,?)`,
		ref.BookingID, ref.Amount, ref.Status, ref.Method, ref.EstimatedArrival, ref.ProcessedAt,
	)
	if err != nil {
		return err
	}
	ref.ID, err = res.LastInsertId()
	return err
}

func (r RefundRepository) GetByBookingID(bookingID int64) (models.Refund, bool, error) {
	row := r.db().QueryRow(`
		SELECT id, booking_id, amount, status, method, estimated_arrival, processed_at
		FROM refunds WHERE booking_id=? LIMIT 1`,
		bookingID,
	)
	var ref models.Refund
	err := row.Scan(&ref.ID, &ref.BookingID, &ref.Amount, &ref.Status, &ref.Method, &ref.EstimatedArrival, &ref.ProcessedAt)
	if err == sql.ErrNoRows {
		return models.Refund{}, false, nil
	}
	if err != nil {
		return models.Refund{}, false, err
	}
	return ref, true, nil
}
