package models

import "time"

// Refund is created only as a side effect of a cancellation and is
// immutable once written. 0 <= Amount <= booking total.
type Refund struct {
	ID               int64     `json:"id"`
	BookingID        int64     `json:"booking_id"`
	Amount           int64     `json:"amount"`
	Status           string    `json:"status"`
	Method           string    `json:"method"`
	EstimatedArrival string    `json:"estimated_arrival"`
	ProcessedAt      time.Time `json:"processed_at"`
}

const (
	RefundStatusProcessed = "processed"
	RefundMethodAutomatic = "automatic"
	RefundArrivalWindow   = "3-5 business days"
)
