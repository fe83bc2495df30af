package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewBookingNumber builds a human-readable booking reference like
// "BK-2026-8-3F9A1": year, month, five random hex characters.
func NewBookingNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return fmt.Sprintf("BK-%d-%d-%s", now.Year(), int(now.Month()), suffix)
}

// NewTransactionID returns a simulated payment-gateway transaction id.
func NewTransactionID() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
