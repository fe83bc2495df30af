package middleware

import (
	"net/http"
	"strings"

	"pawbackend/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets through callers whose role is listed. Assumes
// RequireAuth ran first. Admins pass every gate.
//
// Example:
//
//	bookings.POST("", RequireRoles("OWNER"), h.CreateBooking)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToUpper(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		rc := GetRequestContext(c)
		if rc.Role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "role missing from context"})
			return
		}
		if rc.Role != domain.RoleAdmin {
			if _, ok := allowed[rc.Role]; !ok {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role not allowed"})
				return
			}
		}
		c.Next()
	}
}
