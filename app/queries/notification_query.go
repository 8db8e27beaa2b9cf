package queries

import (
	"database/sql"
	"errors"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/google/uuid"
)

type NotificationQueries struct {
	DB *sql.DB
}

func (q *NotificationQueries) CreateNotification(n *models.Notification) error {
	query := `INSERT INTO notifications (id, user_id, message, type, read, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.DB.Exec(query, n.ID, n.UserID, n.Message, n.Type, n.Read, n.CreatedAt)
	if err != nil {
		println(err.Error())
		return errors.New("unable to create notification, DB error")
	}
	return nil
}

func (q *NotificationQueries) GetNotificationsByUser(userID uuid.UUID) ([]models.Notification, error) {
	notifications := []models.Notification{}
	query := `SELECT id, user_id, message, type, read, created_at
			  FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := q.DB.Query(query, userID)
	if err != nil {
		println(err.Error())
		return notifications, errors.New("unable to query notifications")
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return notifications, errors.New("error scanning notification row")
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flips the read flag. Scoped to the recipient so a
// user cannot mark someone else's notification.
func (q *NotificationQueries) MarkNotificationRead(id, userID uuid.UUID) error {
	res, err := q.DB.Exec(`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		println(err.Error())
		return errors.New("unable to update notification, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
