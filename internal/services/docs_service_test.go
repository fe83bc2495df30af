package services

import (
	"testing"
	"time"

	"pawbackend/internal/domain"
	"pawbackend/internal/domain/models"
)

func TestDocsServiceGenerate(t *testing.T) {
	loader := func(id int64) (bookingDocData, error) {
		return bookingDocData{
			BookingNumber: "BK-2026-8-ABCDE",
			ServiceType:   "WALK",
			OwnerName:     "Owner Tester",
			WalkerName:    "Walker Tester",
			StartAt:       time.Now().Add(24 * time.Hour),
			DurationMin:   60,
			BasePrice:     2500,
			AdditionalServices: []models.AdditionalService{
				{Name: "Extended play time", Price: 500},
			},
			Subtotal:      3000,
			Tax:           600,
			Total:         3600,
			Status:        "CANCELLED",
			PaymentStatus: "REFUNDED",
			RefundAmount:  3600,
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateInvoice(1)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateInvoice returned empty data")
	}

	receipt, recName, err := svc.GenerateRefundReceipt(1)
	if err != nil {
		t.Fatalf("GenerateRefundReceipt returned error: %v", err)
	}
	if len(receipt) == 0 || recName == "" {
		t.Fatalf("GenerateRefundReceipt returned empty data")
	}
}

func TestRefundReceiptRequiresRefund(t *testing.T) {
	svc := DocsService{Loader: func(id int64) (bookingDocData, error) {
		return bookingDocData{BookingNumber: "BK-2026-8-ABCDE", Total: 3600}, nil
	}}

	_, _, err := svc.GenerateRefundReceipt(1)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found for booking without refund, got %v", err)
	}
}
