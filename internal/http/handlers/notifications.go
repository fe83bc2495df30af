package handlers

import (
	"net/http"

	"pawbackend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/notifications
func GetNotifications(c *gin.Context) {
	rc := requestContext(c)
	list, err := repositories.NotificationRepository{}.ListByUser(rc.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}
