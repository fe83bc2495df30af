package services

import (
	"bytes"
	"fmt"
	"time"

	"pawbackend/internal/domain"
	"pawbackend/internal/domain/models"
	"pawbackend/internal/repositories"
	"pawbackend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking invoices and refund receipts as PDFs.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	UserRepo    repositories.UserRepository
	RefundRepo  repositories.RefundRepository
	RequestID   string
	Loader      func(int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingNumber      string
	ServiceType        string
	OwnerName          string
	WalkerName         string
	StartAt            time.Time
	DurationMin        int
	BasePrice          int64
	AdditionalServices []models.AdditionalService
	Subtotal           int64
	Tax                int64
	Total              int64
	Status             string
	PaymentStatus      string
	RefundAmount       int64
}

func (s DocsService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(data)
}

func (s DocsService) GenerateRefundReceipt(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	if data.RefundAmount <= 0 {
		return nil, "", domain.NotFoundError{Resource: "refund"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_refund_receipt", fmt.Sprintf("booking_id=%d", bookingID))
	return buildRefundReceiptPDF(data)
}

func (s DocsService) loadBookingDocData(bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return bookingDocData{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	out := bookingDocData{
		BookingNumber:      b.BookingNumber,
		ServiceType:        b.ServiceType,
		StartAt:            b.StartAt,
		DurationMin:        b.DurationMin,
		BasePrice:          b.BasePrice,
		AdditionalServices: b.AdditionalServices,
		Subtotal:           b.Subtotal,
		Tax:                b.Tax,
		Total:              b.Total,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
	}
	// names are decoration on the document, missing users don't block it
	if owner, err := s.UserRepo.GetByID(b.OwnerID); err == nil {
		out.OwnerName = owner.Name
	}
	if walker, err := s.UserRepo.GetByID(b.WalkerID); err == nil {
		out.WalkerName = walker.Name
	}
	if ref, found, err := s.RefundRepo.GetByBookingID(b.ID); err == nil && found {
		out.RefundAmount = ref.Amount
	}
	return out, nil
}

func buildInvoicePDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking       : %s", safe(d.BookingNumber, "-")),
		fmt.Sprintf("Service       : %s", safe(d.ServiceType, "-")),
		fmt.Sprintf("Owner         : %s", safe(d.OwnerName, "-")),
		fmt.Sprintf("Walker        : %s", safe(d.WalkerName, "-")),
		fmt.Sprintf("Scheduled     : %s", utils.FormatDateTime(d.StartAt)),
		fmt.Sprintf("Duration      : %d min", d.DurationMin),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Charges")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Base price    : %s EUR", utils.FormatMoney(d.BasePrice)))
	pdf.Ln(8)
	for _, add := range d.AdditionalServices {
		pdf.Cell(0, 8, fmt.Sprintf("%-14s: %s EUR", safe(add.Name, "Extra"), utils.FormatMoney(add.Price)))
		pdf.Ln(8)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal      : %s EUR", utils.FormatMoney(d.Subtotal)))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Tax           : %s EUR", utils.FormatMoney(d.Tax)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total         : %s EUR", utils.FormatMoney(d.Total)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s / payment %s", safe(d.Status, "-"), safe(d.PaymentStatus, "-")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("invoice-%s.pdf", safe(d.BookingNumber, "booking"))
	return buf.Bytes(), filename, nil
}

func buildRefundReceiptPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Refund Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "REFUND RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking       : %s", safe(d.BookingNumber, "-")),
		fmt.Sprintf("Owner         : %s", safe(d.OwnerName, "-")),
		fmt.Sprintf("Booking total : %s EUR", utils.FormatMoney(d.Total)),
		fmt.Sprintf("Refunded      : %s EUR", utils.FormatMoney(d.RefundAmount)),
		"Method        : automatic",
		fmt.Sprintf("Arrival       : %s", models.RefundArrivalWindow),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("refund-%s.pdf", safe(d.BookingNumber, "booking"))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
