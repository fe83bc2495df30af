package api

import (
	stdhttp "net/http"
	"time"

	intconfig "pawbackend/internal/config"
	h "pawbackend/internal/http/handlers"
	"pawbackend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logrus.Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth())

		bookings := authed.Group("/bookings")
		bookings.POST("", middleware.RequireRoles("OWNER"), h.CreateBooking)
		bookings.GET("", h.GetBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.PUT("/:id/accept", middleware.RequireRoles("WALKER"), h.AcceptBooking)
		bookings.PUT("/:id/reject", middleware.RequireRoles("WALKER"), h.RejectBooking)
		bookings.PUT("/:id/complete", middleware.RequireRoles("WALKER"), h.CompleteBooking)
		bookings.POST("/:id/cancel", middleware.RequireRoles("OWNER"), h.CancelBooking)
		bookings.GET("/:id/cancellation-quote", h.GetCancellationQuote)
		bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)
		bookings.GET("/:id/refund-receipt", h.GetRefundReceiptPDF)

		payments := authed.Group("/payments")
		payments.POST("", middleware.RequireRoles("OWNER"), h.CreatePayment)
		payments.PUT("/:id/capture", h.CapturePayment)
		payments.PUT("/:id/refund", h.RefundPayment)
		payments.PUT("/:id/fail", h.FailPayment)
		payments.GET("/booking/:bookingId", h.GetPaymentsForBooking)

		earnings := authed.Group("/earnings")
		earnings.Use(middleware.RequireRoles("WALKER"))
		earnings.GET("", h.GetEarnings)
		earnings.GET("/balance", h.GetEarningsBalance)

		authed.POST("/withdrawals", middleware.RequireRoles("WALKER"), h.RequestWithdrawal)

		authed.GET("/notifications", h.GetNotifications)
	}

	return r
}
