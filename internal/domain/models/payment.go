package models

import "time"

// PaymentMethod is how the owner pays; capture itself is simulated.
type PaymentMethod string

const (
	MethodCard         PaymentMethod = "CARD"
	MethodPaypal       PaymentMethod = "PAYPAL"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// ValidPaymentMethod checks a raw method value against the enum.
func ValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case MethodCard, MethodPaypal, MethodBankTransfer:
		return true
	}
	return false
}

// Payment is one charge attempt for a booking. Created PENDING, then
// COMPLETED (triggers an earning), REFUNDED or FAILED.
type Payment struct {
	ID            int64         `json:"id"`
	BookingID     int64         `json:"booking_id"`
	Amount        int64         `json:"amount"`
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Status        PaymentStatus `json:"status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
