package models

import "time"

// BookingStatus is the single source of truth for a booking's lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingAccepted  BookingStatus = "ACCEPTED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// PaymentStatus is tracked independently of booking status.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// bookingTransitions lists every permitted status change. Terminal
// states (REJECTED, COMPLETED, CANCELLED) have no outgoing edges.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingAccepted, BookingRejected, BookingCancelled},
	BookingAccepted: {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether from -> to is a legal booking status change.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// ValidBookingStatus checks a raw status value against the enum.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingPending, BookingAccepted, BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// AdditionalService is one extra line item on a booking (price in cents).
type AdditionalService struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Booking is a scheduled service engagement between an owner and a walker.
// Money columns are integer cents; Total = Subtotal + Tax and
// Subtotal = BasePrice + sum of additional service prices.
type Booking struct {
	ID                 int64               `json:"id"`
	BookingNumber      string              `json:"booking_number"`
	OwnerID            int64               `json:"owner_id"`
	WalkerID           int64               `json:"walker_id"`
	PetID              int64               `json:"pet_id"`
	ServiceType        string              `json:"service_type"`
	StartAt            time.Time           `json:"start_at"`
	EndAt              time.Time           `json:"end_at"`
	DurationMin        int                 `json:"duration_min"`
	BasePrice          int64               `json:"base_price"`
	AdditionalServices []AdditionalService `json:"additional_services"`
	Subtotal           int64               `json:"subtotal"`
	Tax                int64               `json:"tax"`
	Total              int64               `json:"total"`
	Status             BookingStatus       `json:"status"`
	PaymentStatus      PaymentStatus       `json:"payment_status"`
	Notes              string              `json:"notes,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}
