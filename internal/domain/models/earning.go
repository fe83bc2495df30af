package models

import "time"

type EarningType string

const (
	EarningService    EarningType = "SERVICE"
	EarningTip        EarningType = "TIP"
	EarningRefund     EarningType = "REFUND"
	EarningWithdrawal EarningType = "WITHDRAWAL"
)

type EarningStatus string

const (
	EarningPending   EarningStatus = "PENDING"
	EarningAvailable EarningStatus = "AVAILABLE"
	EarningWithdrawn EarningStatus = "WITHDRAWN"
)

// Earning is one append-only ledger entry for a walker. Positive amounts
// are credits, negative are debits. Rows are never updated or deleted;
// the withdrawable balance is always a sum over entries, never stored.
type Earning struct {
	ID          int64         `json:"id"`
	WalkerID    int64         `json:"walker_id"`
	BookingID   int64         `json:"booking_id,omitempty"`
	Amount      int64         `json:"amount"`
	Type        EarningType   `json:"type"`
	Status      EarningStatus `json:"status"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
