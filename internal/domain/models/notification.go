package models

import "time"

// Notification is a fire-and-forget record consumed by the notifications
// UI. The core never waits for delivery.
type Notification struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	NotifBookingRequested = "booking_requested"
	NotifBookingAccepted  = "booking_accepted"
	NotifBookingRejected  = "booking_rejected"
	NotifBookingCancelled = "booking_cancelled"
	NotifPaymentReceived  = "payment_received"
	NotifWithdrawal       = "withdrawal_requested"
)
