package handlers

import (
	"errors"
	"net/http"

	"pawbackend/internal/domain"
	"pawbackend/internal/http/middleware"
	"pawbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"details":    details,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses in one place.
// Policy and balance rejections are 422: the request was well-formed but
// the business rules refuse it, and the details let the client explain.
func RespondDomainError(c *gin.Context, err error) {
	var (
		policyErr  domain.PolicyViolationError
		balanceErr domain.InsufficientBalanceError
	)
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsInvalidTransition(err):
		respondError(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.As(err, &policyErr):
		respondError(c, http.StatusUnprocessableEntity, "policy_violation", policyErr.Error(), gin.H{
			"hours_until_start": policyErr.HoursLeft,
			"refund_amount":     utils.FormatMoney(policyErr.Refund),
		})
	case errors.As(err, &balanceErr):
		respondError(c, http.StatusUnprocessableEntity, "insufficient_balance", balanceErr.Error(), gin.H{
			"requested": utils.FormatMoney(balanceErr.Requested),
			"balance":   utils.FormatMoney(balanceErr.Balance),
		})
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
