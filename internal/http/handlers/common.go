package handlers

import (
	"net/http"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain"
	"pawbackend/internal/http/middleware"
	"pawbackend/internal/services"

	"github.com/gin-gonic/gin"
)

var env intconfig.Env

// Configure stores the runtime configuration handlers need (rates,
// limits). Called once from the router.
func Configure(e intconfig.Env) {
	env = e
}

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

func requestContext(c *gin.Context) domain.RequestContext {
	return middleware.GetRequestContext(c)
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		RequestID: middleware.GetRequestID(c),
		TaxRateBP: env.TaxRateBP,
	}
}

func settlementService(c *gin.Context) services.SettlementService {
	return services.SettlementService{
		RequestID:     middleware.GetRequestID(c),
		WalkerShareBP: env.WalkerShareBP,
	}
}

func withdrawalService(c *gin.Context) services.WithdrawalService {
	return services.WithdrawalService{
		RequestID: middleware.GetRequestID(c),
		MinCents:  env.WithdrawMinCents,
		FeeBP:     env.WithdrawFeeBP,
	}
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{RequestID: middleware.GetRequestID(c)}
}
