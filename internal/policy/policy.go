// Package policy decides cancellation/modification eligibility and refund
// tiers for bookings. Everything here is a pure function of the booking's
// schedule, its status and the clock the caller passes in; all side
// effects belong to the calling service.
package policy

import (
	"time"

	"pawbackend/internal/domain/models"
)

const (
	// FullRefundHours is the window boundary for free cancellation.
	// Strictly more than 3 hours before the start refunds 100%.
	FullRefundHours = 3.0
	// PartialRefundHours bounds the 50% tier: (1h, 3h] refunds half,
	// 1 hour or less refunds nothing.
	PartialRefundHours = 1.0

	partialRefundBP = 5000
)

// HoursUntil returns the fractional hours between now and the scheduled
// start. Negative when the appointment has passed.
func HoursUntil(start, now time.Time) float64 {
	return start.Sub(now).Hours()
}

// eligible is the shared modify/cancel predicate. The two gates are
// identical today; keep them as separate exported names so they can
// diverge without touching call sites.
func eligible(status models.BookingStatus, hoursUntil float64) bool {
	if hoursUntil <= FullRefundHours {
		return false
	}
	switch status {
	case models.BookingPending, models.BookingAccepted:
		return true
	}
	return false
}

// CanCancel reports whether the owner may cancel with a full refund.
func CanCancel(status models.BookingStatus, hoursUntil float64) bool {
	return eligible(status, hoursUntil)
}

// CanModify reports whether the owner may reschedule the booking.
func CanModify(status models.BookingStatus, hoursUntil float64) bool {
	return eligible(status, hoursUntil)
}

// RefundAmount computes the refundable cents for a cancellation happening
// hoursUntil before the start. Exactly 3.0 hours falls in the 50% tier,
// exactly 1.0 hour refunds nothing. Never errors: callers may always show
// the amount even when cancellation itself is blocked.
func RefundAmount(totalCents int64, hoursUntil float64) int64 {
	switch {
	case hoursUntil > FullRefundHours:
		return totalCents
	case hoursUntil > PartialRefundHours:
		return totalCents * partialRefundBP / 10000
	default:
		return 0
	}
}
