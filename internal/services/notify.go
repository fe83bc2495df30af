package services

import (
	"pawbackend/internal/domain/models"
	"pawbackend/internal/repositories"
	"pawbackend/internal/utils"
)

// dispatchNotification stores a notification record best-effort. A failed
// dispatch is logged and swallowed: notification delivery must never roll
// back a money-moving operation that already committed.
func dispatchNotification(repo repositories.NotificationRepository, requestID string, n models.Notification) {
	if err := repo.Create(&n); err != nil {
		utils.LogWarn(requestID, "notify", n.Type, "notification create failed: "+err.Error())
	}
}
