package handlers

import (
	"net/http"
	"strconv"

	"pawbackend/internal/domain"
	"pawbackend/internal/domain/models"
	"pawbackend/internal/services"
	"pawbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

type additionalServiceRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type createBookingRequest struct {
	WalkerID           int64                      `json:"walker_id"`
	PetID              int64                      `json:"pet_id"`
	ServiceType        string                     `json:"service_type"`
	StartAt            string                     `json:"start_at"`
	DurationMin        int                        `json:"duration_min"`
	BasePrice          string                     `json:"base_price"`
	AdditionalServices []additionalServiceRequest `json:"additional_services"`
	Notes              string                     `json:"notes"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	startAt, err := utils.ParseSchedule(req.StartAt)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "start_at must be YYYY-MM-DD HH:MM", err)
		return
	}
	basePrice, err := utils.ParseMoney(req.BasePrice)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "base_price must be a money amount like 25.00", err)
		return
	}
	adds := make([]models.AdditionalService, 0, len(req.AdditionalServices))
	for _, a := range req.AdditionalServices {
		price, err := utils.ParseMoney(a.Price)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "additional service price must be a money amount", err)
			return
		}
		adds = append(adds, models.AdditionalService{Name: a.Name, Price: price})
	}

	b, err := bookingService(c).Create(requestContext(c), services.CreateBookingInput{
		WalkerID:           req.WalkerID,
		PetID:              req.PetID,
		ServiceType:        req.ServiceType,
		StartAt:            startAt,
		DurationMin:        req.DurationMin,
		BasePrice:          basePrice,
		AdditionalServices: adds,
		Notes:              req.Notes,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// GET /api/bookings
func GetBookings(c *gin.Context) {
	list, err := bookingService(c).List(requestContext(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := bookingService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// PUT /api/bookings/:id/accept
func AcceptBooking(c *gin.Context) {
	bookingTransition(c, services.BookingService.Accept)
}

// PUT /api/bookings/:id/reject
func RejectBooking(c *gin.Context) {
	bookingTransition(c, services.BookingService.Reject)
}

// PUT /api/bookings/:id/complete
func CompleteBooking(c *gin.Context) {
	bookingTransition(c, services.BookingService.Complete)
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := bookingService(c).Cancel(requestContext(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":       res.Booking,
		"refund_amount": utils.FormatMoney(res.RefundAmount),
		"refund":        res.Refund,
	})
}

// GET /api/bookings/:id/cancellation-quote
func GetCancellationQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	q, err := bookingService(c).Quote(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking_id":        q.BookingID,
		"hours_until_start": q.HoursUntil,
		"can_cancel":        q.CanCancel,
		"can_modify":        q.CanModify,
		"refund_amount":     utils.FormatMoney(q.RefundAmount),
		"total":             utils.FormatMoney(q.Total),
	})
}

// GET /api/bookings/:id/invoice
func GetBookingInvoicePDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/bookings/:id/refund-receipt
func GetRefundReceiptPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).GenerateRefundReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func bookingTransition(c *gin.Context, op func(services.BookingService, domain.RequestContext, int64) (models.Booking, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := op(bookingService(c), requestContext(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}
