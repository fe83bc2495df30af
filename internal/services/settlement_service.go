package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain"
	"pawbackend/internal/domain/models"
	"pawbackend/internal/repositories"
	"pawbackend/internal/utils"
)

const defaultWalkerShareBP = 8000

// SettlementService converts payment events into ledger and booking
// side effects. Capture is simulated (no gateway call); the money
// split is real: the walker gets their share as an AVAILABLE earning,
// the platform keeps the rest.
type SettlementService struct {
	PaymentRepo      repositories.PaymentRepository
	BookingRepo      repositories.BookingRepository
	EarningRepo      repositories.EarningRepository
	NotificationRepo repositories.NotificationRepository
	DB               *sql.DB
	Now              func() time.Time
	RequestID        string
	WalkerShareBP    int64
}

func (s SettlementService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s SettlementService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s SettlementService) share() int64 {
	if s.WalkerShareBP > 0 {
		return s.WalkerShareBP
	}
	return defaultWalkerShareBP
}

func (s SettlementService) payments() repositories.PaymentRepository {
	if s.PaymentRepo.DB != nil {
		return s.PaymentRepo
	}
	return repositories.PaymentRepository{DB: s.db()}
}

func (s SettlementService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s SettlementService) earnings() repositories.EarningRepository {
	if s.EarningRepo.DB != nil {
		return s.EarningRepo
	}
	return repositories.EarningRepository{DB: s.db()}
}

func (s SettlementService) notifications() repositories.NotificationRepository {
	if s.NotificationRepo.DB != nil {
		return s.NotificationRepo
	}
	return repositories.NotificationRepository{DB: s.db()}
}

// CreatePayment stores a PENDING payment for a booking. A zero amount
// defaults to the booking total.
func (s SettlementService) CreatePayment(bookingID, amount int64, method string) (models.Payment, error) {
	if !models.ValidPaymentMethod(method) {
		return models.Payment{}, domain.ValidationError{Field: "method", Msg: "must be CARD, PAYPAL or BANK_TRANSFER"}
	}
	b, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return models.Payment{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if amount < 0 {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "must not be negative"}
	}
	if amount == 0 {
		amount = b.Total
	}
	p := models.Payment{
		BookingID: b.ID,
		Amount:    amount,
		Method:    models.PaymentMethod(method),
		Status:    models.PaymentPending,
	}
	if err := s.payments().Create(&p); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to store payment", Err: err}
	}
	return p, nil
}

func (s SettlementService) GetPaymentsForBooking(bookingID int64) ([]models.Payment, error) {
	list, err := s.payments().ListByBooking(bookingID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list payments", Err: err}
	}
	return list, nil
}

// CapturePayment settles a PENDING payment: flips it to COMPLETED with a
// generated transaction id, marks the booking paid and credits the
// walker's share as one AVAILABLE SERVICE earning. The guarded status
// flip makes this idempotent: a second capture of the same payment is a
// conflict and credits nothing.
func (s SettlementService) CapturePayment(paymentID int64) (models.Payment, error) {
	p, err := s.payments().GetByID(paymentID)
	if err != nil {
		return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
	}
	b, err := s.bookings().GetByID(p.BookingID)
	if err != nil {
		return models.Payment{}, domain.NotFoundError{Resource: "booking", Err: err}
	}

	now := s.now()
	transactionID := utils.NewTransactionID()

	tx, err := s.db().Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to begin transaction", Err: err}
	}
	defer tx.Rollback()

	ok, err := s.payments().MarkCompleted(tx, p.ID, transactionID, now)
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to capture payment", Err: err}
	}
	if !ok {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "payment already processed"}
	}
	if err := s.bookings().UpdatePaymentStatus(tx, b.ID, models.PaymentCompleted); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to update booking payment status", Err: err}
	}

	walkerShare := utils.Percent(p.Amount, s.share())
	earning := models.Earning{
		WalkerID:    b.WalkerID,
		BookingID:   b.ID,
		Amount:      walkerShare,
		Type:        models.EarningService,
		Status:      models.EarningAvailable,
		Description: fmt.Sprintf("Service earning for booking %s", b.BookingNumber),
	}
	if err := s.earnings().Append(tx, &earning); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to credit earning", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to commit settlement", Err: err}
	}

	utils.LogEvent(s.RequestID, "settlement", "capture",
		fmt.Sprintf("payment_id=%d booking_id=%d amount=%s walker_share=%s",
			p.ID, b.ID, utils.FormatMoney(p.Amount), utils.FormatMoney(walkerShare)))

	dispatchNotification(s.notifications(), s.RequestID, models.Notification{
		UserID:      b.WalkerID,
		Type:        models.NotifPaymentReceived,
		Title:       "Payment received",
		Description: fmt.Sprintf("You earned %s for booking %s", utils.FormatMoney(walkerShare), b.BookingNumber),
		Link:        "/earnings",
	})

	p.Status = models.PaymentCompleted
	p.TransactionID = transactionID
	p.PaidAt = &now
	return p, nil
}

// RefundPayment flips a COMPLETED payment to REFUNDED, mirrors the state
// on the booking and reverses the walker's settled credit with a
// negative REFUND entry.
func (s SettlementService) RefundPayment(paymentID int64) (models.Payment, error) {
	p, err := s.payments().GetByID(paymentID)
	if err != nil {
		return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
	}
	b, err := s.bookings().GetByID(p.BookingID)
	if err != nil {
		return models.Payment{}, domain.NotFoundError{Resource: "booking", Err: err}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to begin transaction", Err: err}
	}
	defer tx.Rollback()

	ok, err := s.payments().MarkRefunded(tx, p.ID)
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to refund payment", Err: err}
	}
	if !ok {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "only captured payments can be refunded"}
	}
	if err := s.bookings().UpdatePaymentStatus(tx, b.ID, models.PaymentRefunded); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to update booking payment status", Err: err}
	}

	if credit, settled, err := s.earnings().ServiceCreditForBooking(tx, b.ID); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to look up earning", Err: err}
	} else if settled {
		reversal := models.Earning{
			WalkerID:    b.WalkerID,
			BookingID:   b.ID,
			Amount:      -credit.Amount,
			Type:        models.EarningRefund,
			Status:      models.EarningAvailable,
			Description: fmt.Sprintf("Reversal for refunded booking %s", b.BookingNumber),
		}
		if err := s.earnings().Append(tx, &reversal); err != nil {
			return models.Payment{}, domain.InternalError{Msg: "failed to reverse earning", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to commit refund", Err: err}
	}

	utils.LogEvent(s.RequestID, "settlement", "refund",
		fmt.Sprintf("payment_id=%d booking_id=%d amount=%s", p.ID, b.ID, utils.FormatMoney(p.Amount)))

	p.Status = models.PaymentRefunded
	return p, nil
}

// FailPayment marks a PENDING payment as FAILED.
func (s SettlementService) FailPayment(paymentID int64) (models.Payment, error) {
	p, err := s.payments().GetByID(paymentID)
	if err != nil {
		return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
	}
	ok, err := s.payments().MarkFailed(s.db(), p.ID)
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to fail payment", Err: err}
	}
	if !ok {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "only pending payments can fail"}
	}
	if err := s.bookings().UpdatePaymentStatus(s.db(), p.BookingID, models.PaymentFailed); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to update booking payment status", Err: err}
	}
	p.Status = models.PaymentFailed
	return p, nil
}
