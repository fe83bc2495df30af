package repositories

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id, booking_id, amount, method, COALESCE(transaction_id, ''), status, paid_at, created_at`

func scanPayment(row scanner) (models.Payment, error) {
	var (
		p      models.Payment
		method string
		status string
	)
	if err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&method,
		&p.TransactionID,
		&status,
		&p.PaidAt,
		&p.CreatedAt,
	); err != nil {
		return models.Payment{}, err
	}
	p.Method = models.PaymentMethod(method)
	p.Status = models.PaymentStatus(status)
	return p, nil
}

// Create inserts a PENDING payment and fills in its generated id.
func (r PaymentRepository) Create(p *models.Payment) error {
	res, err := r.db().Exec(`
		INSERT INTO payments (booking_id, amount, method, status)
		VALUES (?,?,?,?)`,
		p.BookingID, p.Amount, string(p.Method), string(p.Status),
	)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	return r.getByID(r.db(), id)
}

func (r PaymentRepository) GetByIDTx(q Runner, id int64) (models.Payment, error) {
	return r.getByID(q, id)
}

func (r PaymentRepository) getByID(q Runner, id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, fmt.Errorf("invalid payment id")
	}
	row := q.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id=? LIMIT 1`, id)
	return scanPayment(row)
}

func (r PaymentRepository) ListByBooking(bookingID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(`SELECT `+paymentColumns+` FROM payments WHERE booking_id=? ORDER BY created_at DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CompletedByBooking returns the captured payment for a booking, if any.
func (r PaymentRepository) CompletedByBooking(q Runner, bookingID int64) (models.Payment, bool, error) {
	row := q.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE booking_id=? AND status='COMPLETED' LIMIT 1`, bookingID)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return models.Payment{}, false, nil
	}
	if err != nil {
		return models.Payment{}, false, err
	}
	return p, true, nil
}

// MarkCompleted flips a payment PENDING -> COMPLETED. The status guard
// makes capture idempotent: a second attempt affects zero rows and the
// caller must not credit earnings again.
func (r PaymentRepository) MarkCompleted(q Runner, id int64, transactionID string, paidAt time.Time) (bool, error) {
	res, err := q.Exec(`
		UPDATE payments SET status='COMPLETED', transaction_id=?, paid_at=?
		WHERE id=? AND status='PENDING'`,
		transactionID, paidAt, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// MarkRefunded flips a payment COMPLETED -> REFUNDED.
func (r PaymentRepository) MarkRefunded(q Runner, id int64) (bool, error) {
	res, err := q.Exec(`UPDATE payments SET status='REFUNDED' WHERE id=? AND status='COMPLETED'`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// MarkFailed flips a payment PENDING -> FAILED.
func (r PaymentRepository) MarkFailed(q Runner, id int64) (bool, error) {
	res, err := q.Exec(`UPDATE payments SET status='FAILED' WHERE id=? AND status='PENDING'`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
