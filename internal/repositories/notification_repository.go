package repositories

import (
	"database/sql"
	"fmt"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create stores a notification record. Callers treat this as
// fire-and-forget; delivery is someone else's problem.
func (r NotificationRepository) Create(n *models.Notification) error {
	if n.UserID <= 0 {
		return fmt.Errorf("invalid user id")
	}
	res, err := r.db().Exec(`
		INSERT INTO notifications (user_id, type, title, description, link)
		VALUES (?,?,?,?,?)`,
		n.UserID, n.Type, n.Title, n.Description, n.Link,
	)
	if err != nil {
		return err
	}
	n.ID, err = res.LastInsertId()
	return err
}

func (r NotificationRepository) ListByUser(userID int64) ([]models.Notification, error) {
	rows, err := r.db().Query(`
		SELECT id, user_id, type, title, COALESCE(description, ''), COALESCE(link, ''), created_at
		FROM notifications WHERE user_id=? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Description, &n.Link, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
