package handlers

import (
	"net/http"
	"strconv"

	"pawbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

type createPaymentRequest struct {
	BookingID int64  `json:"booking_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
}

// POST /api/payments
func CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	// empty amount means "charge the booking total"
	var amount int64
	if req.Amount != "" {
		var err error
		amount, err = utils.ParseMoney(req.Amount)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "amount must be a money amount like 25.00", err)
			return
		}
	}

	p, err := settlementService(c).CreatePayment(req.BookingID, amount, req.Method)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": p})
}

// PUT /api/payments/:id/capture
func CapturePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := settlementService(c).CapturePayment(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": p})
}

// PUT /api/payments/:id/refund
func RefundPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := settlementService(c).RefundPayment(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": p})
}

// PUT /api/payments/:id/fail
func FailPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := settlementService(c).FailPayment(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": p})
}

// GET /api/payments/booking/:bookingId
func GetPaymentsForBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", err)
		return
	}
	list, err := settlementService(c).GetPaymentsForBooking(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": list})
}
