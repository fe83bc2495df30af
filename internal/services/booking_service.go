package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain"
	"pawbackend/internal/domain/models"
	"pawbackend/internal/policy"
	"pawbackend/internal/repositories"
	"pawbackend/internal/utils"
)

// BookingService owns the booking lifecycle: creation, the
// accept/reject/complete transitions and cancellation with its refund
// side effects. Policy decisions come from internal/policy; this service
// performs the writes the policy allows.
type BookingService struct {
	BookingRepo      repositories.BookingRepository
	PaymentRepo      repositories.PaymentRepository
	EarningRepo      repositories.EarningRepository
	RefundRepo       repositories.RefundRepository
	NotificationRepo repositories.NotificationRepository
	DB               *sql.DB
	Now              func() time.Time
	RequestID        string
	// TaxRateBP is applied to the subtotal at creation (basis points).
	TaxRateBP int64
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) payments() repositories.PaymentRepository {
	if s.PaymentRepo.DB != nil {
		return s.PaymentRepo
	}
	return repositories.PaymentRepository{DB: s.db()}
}

func (s BookingService) earnings() repositories.EarningRepository {
	if s.EarningRepo.DB != nil {
		return s.EarningRepo
	}
	return repositories.EarningRepository{DB: s.db()}
}

func (s BookingService) refunds() repositories.RefundRepository {
	if s.RefundRepo.DB != nil {
		return s.RefundRepo
	}
	return repositories.RefundRepository{DB: s.db()}
}

func (s BookingService) notifications() repositories.NotificationRepository {
	if s.NotificationRepo.DB != nil {
		return s.NotificationRepo
	}
	return repositories.NotificationRepository{DB: s.db()}
}

// CreateBookingInput carries validated, cent-denominated booking data.
type CreateBookingInput struct {
	WalkerID           int64
	PetID              int64
	ServiceType        string
	StartAt            time.Time
	DurationMin        int
	BasePrice          int64
	AdditionalServices []models.AdditionalService
	Notes              string
}

// Create stores a new PENDING booking for the calling owner and notifies
// the walker. Pricing is computed here so the stored invariants
// (subtotal = base + extras, total = subtotal + tax) always hold.
func (s BookingService) Create(rc domain.RequestContext, in CreateBookingInput) (models.Booking, error) {
	if in.WalkerID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "walker_id", Msg: "required"}
	}
	if in.PetID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "pet_id", Msg: "required"}
	}
	if strings.TrimSpace(in.ServiceType) == "" {
		return models.Booking{}, domain.ValidationError{Field: "service_type", Msg: "required"}
	}
	if in.DurationMin <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "duration", Msg: "must be positive"}
	}
	if in.BasePrice < 0 {
		return models.Booking{}, domain.ValidationError{Field: "base_price", Msg: "must not be negative"}
	}
	now := s.now()
	if !in.StartAt.After(now) {
		return models.Booking{}, domain.ValidationError{Field: "start_at", Msg: "must be in the future"}
	}

	subtotal := in.BasePrice
	for _, add := range in.AdditionalServices {
		if add.Price < 0 {
			return models.Booking{}, domain.ValidationError{Field: "additional_services", Msg: "price must not be negative"}
		}
		subtotal += add.Price
	}
	tax := utils.Percent(subtotal, s.TaxRateBP)

	b := models.Booking{
		BookingNumber:      utils.NewBookingNumber(now),
		OwnerID:            rc.UserID,
		WalkerID:           in.WalkerID,
		PetID:              in.PetID,
		ServiceType:        strings.TrimSpace(in.ServiceType),
		StartAt:            in.StartAt,
		EndAt:              in.StartAt.Add(time.Duration(in.DurationMin) * time.Minute),
		DurationMin:        in.DurationMin,
		BasePrice:          in.BasePrice,
		AdditionalServices: in.AdditionalServices,
		Subtotal:           subtotal,
		Tax:                tax,
		Total:              subtotal + tax,
		Status:             models.BookingPending,
		PaymentStatus:      models.PaymentPending,
		Notes:              strings.TrimSpace(in.Notes),
	}
	if err := s.bookings().Create(&b); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to store booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("booking_id=%d number=%s", b.ID, b.BookingNumber))

	dispatchNotification(s.notifications(), s.RequestID, models.Notification{
		UserID:      b.WalkerID,
		Type:        models.NotifBookingRequested,
		Title:       "New booking request",
		Description: fmt.Sprintf("Booking %s for %s", b.BookingNumber, utils.FormatDateTime(b.StartAt)),
		Link:        fmt.Sprintf("/bookings/%d", b.ID),
	})
	return b, nil
}

func (s BookingService) Get(id int64) (models.Booking, error) {
	b, err := s.bookings().GetByID(id)
	if err != nil {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return b, nil
}

func (s BookingService) List(rc domain.RequestContext) ([]models.Booking, error) {
	role := rc.Role
	if role == domain.RoleAdmin {
		role = ""
	}
	list, err := s.bookings().ListForUser(rc.UserID, role)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list bookings", Err: err}
	}
	return list, nil
}

// Accept moves a PENDING booking to ACCEPTED (walker action).
func (s BookingService) Accept(rc domain.RequestContext, id int64) (models.Booking, error) {
	return s.providerTransition(rc, id, models.BookingAccepted, models.NotifBookingAccepted, "Booking accepted")
}

// Reject moves a PENDING booking to REJECTED (walker action, terminal).
func (s BookingService) Reject(rc domain.RequestContext, id int64) (models.Booking, error) {
	return s.providerTransition(rc, id, models.BookingRejected, models.NotifBookingRejected, "Booking declined")
}

// Complete marks an ACCEPTED booking's service as delivered.
func (s BookingService) Complete(rc domain.RequestContext, id int64) (models.Booking, error) {
	return s.providerTransition(rc, id, models.BookingCompleted, "", "")
}

func (s BookingService) providerTransition(rc domain.RequestContext, id int64, to models.BookingStatus, notifType, notifTitle string) (models.Booking, error) {
	b, err := s.bookings().GetByID(id)
	if err != nil {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if rc.Role != domain.RoleAdmin && b.WalkerID != rc.UserID {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "booking is assigned to another walker"}
	}
	if !models.CanTransition(b.Status, to) {
		return models.Booking{}, domain.InvalidTransitionError{Entity: "booking", From: string(b.Status), To: string(to)}
	}

	ok, err := s.bookings().UpdateStatus(s.db(), b.ID, b.Status, to)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to update booking status", Err: err}
	}
	if !ok {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "status changed concurrently, reload and retry"}
	}
	utils.LogEvent(s.RequestID, "booking", "transition", fmt.Sprintf("booking_id=%d %s->%s", b.ID, b.Status, to))
	b.Status = to

	if notifType != "" {
		dispatchNotification(s.notifications(), s.RequestID, models.Notification{
			UserID:      b.OwnerID,
			Type:        notifType,
			Title:       notifTitle,
			Description: fmt.Sprintf("Booking %s", b.BookingNumber),
			Link:        fmt.Sprintf("/bookings/%d", b.ID),
		})
	}
	return b, nil
}

// CancellationQuote is the read-only view of the policy for one booking.
// All fields are always defined; quoting never fails on policy grounds.
type CancellationQuote struct {
	BookingID    int64   `json:"booking_id"`
	HoursUntil   float64 `json:"hours_until"`
	CanCancel    bool    `json:"can_cancel"`
	CanModify    bool    `json:"can_modify"`
	RefundAmount int64   `json:"refund_amount"`
	Total        int64   `json:"total"`
}

func (s BookingService) Quote(id int64) (CancellationQuote, error) {
	b, err := s.bookings().GetByID(id)
	if err != nil {
		return CancellationQuote{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	hours := policy.HoursUntil(b.StartAt, s.now())
	return CancellationQuote{
		BookingID:    b.ID,
		HoursUntil:   hours,
		CanCancel:    policy.CanCancel(b.Status, hours),
		CanModify:    policy.CanModify(b.Status, hours),
		RefundAmount: policy.RefundAmount(b.Total, hours),
		Total:        b.Total,
	}, nil
}

// CancelResult reports what one cancellation actually did.
type CancelResult struct {
	Booking      models.Booking `json:"booking"`
	RefundAmount int64          `json:"refund_amount"`
	Refund       *models.Refund `json:"refund,omitempty"`
}

// Cancel cancels a booking on behalf of its owner as one logical unit:
// policy check, optimistic status flip, refund record, payment refund
// with earning reversal when already settled, walker notification. All
// store writes share one transaction; nothing is applied on failure.
//
// Inside the zero-refund window (one hour or less before start) the
// cancellation is rejected with the computed refund attached so the UI
// can explain why. Between one and three hours it proceeds at 50%.
func (s BookingService) Cancel(rc domain.RequestContext, id int64) (CancelResult, error) {
	b, err := s.bookings().GetByID(id)
	if err != nil {
		return CancelResult{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if rc.Role != domain.RoleAdmin && b.OwnerID != rc.UserID {
		return CancelResult{}, domain.ValidationError{Field: "booking_id", Msg: "booking belongs to another owner"}
	}
	if !models.CanTransition(b.Status, models.BookingCancelled) {
		return CancelResult{}, domain.InvalidTransitionError{Entity: "booking", From: string(b.Status), To: string(models.BookingCancelled)}
	}

	now := s.now()
	hours := policy.HoursUntil(b.StartAt, now)
	refundAmount := policy.RefundAmount(b.Total, hours)
	if hours <= policy.PartialRefundHours {
		return CancelResult{}, domain.PolicyViolationError{
			Msg:       "too close to the appointment to cancel",
			HoursLeft: hours,
			Refund:    refundAmount,
		}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return CancelResult{}, domain.InternalError{Msg: "failed to begin transaction", Err: err}
	}
	defer tx.Rollback()

	ok, err := s.bookings().UpdateStatus(tx, b.ID, b.Status, models.BookingCancelled)
	if err != nil {
		return CancelResult{}, domain.InternalError{Msg: "failed to cancel booking", Err: err}
	}
	if !ok {
		return CancelResult{}, domain.ConflictError{Resource: "booking", Msg: "status changed concurrently, reload and retry"}
	}

	var refund *models.Refund
	if refundAmount > 0 {
		refund = &models.Refund{
			BookingID:        b.ID,
			Amount:           refundAmount,
			Status:           models.RefundStatusProcessed,
			Method:           models.RefundMethodAutomatic,
			EstimatedArrival: models.RefundArrivalWindow,
			ProcessedAt:      now,
		}
		if err := s.refunds().Create(tx, refund); err != nil {
			return CancelResult{}, domain.InternalError{Msg: "failed to record refund", Err: err}
		}
	}

	if payment, found, err := s.payments().CompletedByBooking(tx, b.ID); err != nil {
		return CancelResult{}, domain.InternalError{Msg: "failed to look up payment", Err: err}
	} else if found {
		if _, err := s.payments().MarkRefunded(tx, payment.ID); err != nil {
			return CancelResult{}, domain.InternalError{Msg: "failed to refund payment", Err: err}
		}
		if err := s.bookings().UpdatePaymentStatus(tx, b.ID, models.PaymentRefunded); err != nil {
			return CancelResult{}, domain.InternalError{Msg: "failed to update payment status", Err: err}
		}
		// the walker's settled credit is reversed with a mirroring
		// negative entry, never by editing the ledger
		if credit, settled, err := s.earnings().ServiceCreditForBooking(tx, b.ID); err != nil {
			return CancelResult{}, domain.InternalError{Msg: "failed to look up earning", Err: err}
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
				return CancelResult{}, domain.InternalError{Msg: "failed to reverse earning", Err: err}
			}
		}
		b.PaymentStatus = models.PaymentRefunded
	}

	if err := tx.Commit(); err != nil {
		return CancelResult{}, domain.InternalError{Msg: "failed to commit cancellation", Err: err}
	}

	b.Status = models.BookingCancelled
	b.CancelledAt = &now
	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking_id=%d refund=%s hours_until=%.2f", b.ID, utils.FormatMoney(refundAmount), hours))

	dispatchNotification(s.notifications(), s.RequestID, models.Notification{
		UserID:      b.WalkerID,
		Type:        models.NotifBookingCancelled,
		Title:       "Booking cancelled by owner",
		Description: fmt.Sprintf("Booking %s was cancelled", b.BookingNumber),
		Link:        fmt.Sprintf("/bookings/%d", b.ID),
	})

	return CancelResult{Booking: b, RefundAmount: refundAmount, Refund: refund}, nil
}
