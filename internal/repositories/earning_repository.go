package repositories

import (
	"database/sql"
	"fmt"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain/models"
)

// EarningRepository is append-only: entries are inserted and summed,
// never updated or deleted. Corrections are new entries with the
// opposite sign.
type EarningRepository struct {
	DB *sql.DB
}

func (r EarningRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Append inserts one ledger entry. The only write this repository has.
func (r EarningRepository) Append(q Runner, e *models.Earning) error {
	if e.WalkerID <= 0 {
		return fmt.Errorf("invalid walker id")
	}
	var bookingID any
	if e.BookingID > 0 {
		bookingID = e.BookingID
	}
	res, err := q.Exec(`
		INSERT INTO earnings (walker_id, booking_id, amount, type, status, description)
		VALUES (?,?,?,?,?,?)`,
		e.WalkerID, bookingID, e.Amount, string(e.Type), string(e.Status), e.Description,
	)
	if err != nil {
		return err
	}
	e.ID, err = res.LastInsertId()
	return err
}

// AvailableBalance derives the withdrawable balance live: credits are
// AVAILABLE positive entries, withdrawal debits are negative WITHDRAWN
// entries. Never cache this sum.
func (r EarningRepository) AvailableBalance(q Runner, walkerID int64) (int64, error) {
	if walkerID <= 0 {
		return 0, fmt.Errorf("invalid walker id")
	}
	var balance int64
	err := q.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM earnings
		WHERE walker_id=? AND status IN ('AVAILABLE','WITHDRAWN')`,
		walkerID,
	).Scan(&balance)
	return balance, err
}

// ServiceCreditForBooking finds the SERVICE credit settled for a booking,
// used to size the reversal entry when a captured payment is refunded.
func (r EarningRepository) ServiceCreditForBooking(q Runner, bookingID int64) (models.Earning, bool, error) {
	row := q.QueryRow(`
		SELECT id, walker_id, COALESCE(booking_id, 0), amount, type, status, COALESCE(description, ''), created_at
		FROM earnings
		WHERE booking_id=? AND type='SERVICE' LIMIT 1`,
		bookingID,
	)
	e, err := scanEarning(row)
	if err == sql.ErrNoRows {
		return models.Earning{}, false, nil
	}
	if err != nil {
		return models.Earning{}, false, err
	}
	return e, true, nil
}

func (r EarningRepository) ListByWalker(walkerID int64) ([]models.Earning, error) {
	rows, err := r.db().Query(`
		SELECT id, walker_id, COALESCE(booking_id, 0), amount, type, status, COALESCE(description, ''), created_at
		FROM earnings
		WHERE walker_id=? ORDER BY created_at DESC`,
		walkerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Earning
	for rows.Next() {
		e, err := scanEarning(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEarning(row scanner) (models.Earning, error) {
	var (
		e      models.Earning
		etype  string
		status string
	)
	if err := row.Scan(
		&e.ID,
		&e.WalkerID,
		&e.BookingID,
		&e.Amount,
		&etype,
		&status,
		&e.Description,
		&e.CreatedAt,
	); err != nil {
		return models.Earning{}, err
	}
	e.Type = models.EarningType(etype)
	e.Status = models.EarningStatus(status)
	return e, nil
}
