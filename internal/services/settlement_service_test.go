package services

import (
	"testing"
	"time"

	"pawbackend/internal/domain"
	"pawbackend/internal/domain/models"
	"pawbackend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newSettlementService(t *testing.T) (SettlementService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock init")
	svc := SettlementService{
		PaymentRepo:      repositories.PaymentRepository{DB: db},
		BookingRepo:      repositories.BookingRepository{DB: db},
		EarningRepo:      repositories.EarningRepository{DB: db},
		NotificationRepo: repositories.NotificationRepository{DB: db},
		DB:               db,
	}
	return svc, mock, func() { db.Close() }
}

func paymentRow(id, bookingID, amount int64, status string, paidAt any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "booking_id", "amount", "method", "transaction_id", "status", "paid_at", "created_at"}).
		AddRow(id, bookingID, amount, "CARD", "", status, paidAt, time.Now())
}

// Capturing a 25.00 payment credits the walker exactly one AVAILABLE
// earning of 20.00 (the 80% share).
func TestCapturePaymentCreditsWalkerShare(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id=").
		WithArgs(int64(9)).
		WillReturnRows(paymentRow(9, 5, 2500, "PENDING", nil))
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, now.Add(24*time.Hour), 2083, 417, 2500, "ACCEPTED", "PENDING"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payments SET status='COMPLETED'").
		WithArgs(sqlmock.AnyArg(), now, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET payment_status=").
		WithArgs("COMPLETED", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO earnings").
		WithArgs(int64(22), int64(5), int64(2000), "SERVICE", "AVAILABLE", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(1, 1))

	p, err := svc.CapturePayment(9)
	require.NoError(t, err)
	require.Equal(t, models.PaymentCompleted, p.Status)
	require.NotEmpty(t, p.TransactionID)
	require.NotNil(t, p.PaidAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A second capture of the same payment hits the status guard and credits
// nothing: the ledger never sees a duplicate earning.
func TestCapturePaymentIdempotent(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id=").
		WithArgs(int64(9)).
		WillReturnRows(paymentRow(9, 5, 2500, "COMPLETED", now))
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, now.Add(24*time.Hour), 2083, 417, 2500, "ACCEPTED", "COMPLETED"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payments SET status='COMPLETED'").
		WithArgs(sqlmock.AnyArg(), now, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.CapturePayment(9)
	require.True(t, domain.IsConflict(err), "second capture must conflict, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet(), "no earning insert may run on a replayed capture")
}

func TestRefundPaymentReversesCredit(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id=").
		WithArgs(int64(9)).
		WillReturnRows(paymentRow(9, 5, 2500, "COMPLETED", now))
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, now.Add(24*time.Hour), 2083, 417, 2500, "ACCEPTED", "COMPLETED"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payments SET status='REFUNDED'").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET payment_status=").
		WithArgs("REFUNDED", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM earnings(.+)type='SERVICE'").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "walker_id", "booking_id", "amount", "type", "status", "description", "created_at"}).
			AddRow(int64(3), int64(22), int64(5), int64(2000), "SERVICE", "AVAILABLE", "Service earning", now))
	mock.ExpectExec("INSERT INTO earnings").
		WithArgs(int64(22), int64(5), int64(-2000), "REFUND", "AVAILABLE", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	p, err := svc.RefundPayment(9)
	require.NoError(t, err)
	require.Equal(t, models.PaymentRefunded, p.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundPendingPaymentConflicts(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE id=").
		WithArgs(int64(9)).
		WillReturnRows(paymentRow(9, 5, 2500, "PENDING", nil))
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, now.Add(24*time.Hour), 2083, 417, 2500, "ACCEPTED", "PENDING"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payments SET status='REFUNDED'").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.RefundPayment(9)
	require.True(t, domain.IsConflict(err), "refunding a pending payment must conflict, got %v", err)
}

func TestCreatePaymentDefaultsToBookingTotal(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, now.Add(24*time.Hour), 2083, 417, 2500, "ACCEPTED", "PENDING"))
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(5), int64(2500), "CARD", "PENDING").
		WillReturnResult(sqlmock.NewResult(9, 1))

	p, err := svc.CreatePayment(5, 0, "CARD")
	require.NoError(t, err)
	require.Equal(t, int64(2500), p.Amount)
	require.Equal(t, models.PaymentPending, p.Status)
}

func TestCreatePaymentRejectsUnknownMethod(t *testing.T) {
	svc, _, done := newSettlementService(t)
	defer done()

	_, err := svc.CreatePayment(5, 2500, "CASH_ON_ARRIVAL")
	require.True(t, domain.IsValidation(err), "got %v", err)
}
