package controllers

import (
	"log"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/ersultanb/carlink-backend/app/queries"
	"github.com/ersultanb/carlink-backend/pkg/database"
	"github.com/ersultanb/carlink-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// notifyUser persists a notification record and mirrors it to the
// recipient's websocket when one is connected. Best-effort: a failure
// here never fails the request that triggered it, the primary write has
// already committed.
func notifyUser(userID uuid.UUID, message, typ string) {
	n := models.NewNotification(userID, message, typ)

	q := queries.NotificationQueries{DB: database.DB}
	if err := q.CreateNotification(n); err != nil {
		log.Printf("event=notification_persist_failed user=%s type=%s error=%v", userID.String(), typ, err)
		return
	}

	if err := utils.DefaultNotifier.Send(userID, n); err != nil && err != utils.ErrNoConnection {
		log.Printf("event=notification_push_failed user=%s error=%v", userID.String(), err)
	}
}

func GetNotifications(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	q := queries.NotificationQueries{DB: database.DB}
	notifications, err := q.GetNotificationsByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
	}
	return c.Status(fiber.StatusOK).JSON(notifications)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	q := queries.NotificationQueries{DB: database.DB}
	if err := q.MarkNotificationRead(id, userID); err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// NotificationsWsHandler keeps a websocket open per user and lets the
// notifier push new notification records as they are created.
func NotificationsWsHandler(c *websocket.Conn) {
	tc, err := utils.ExtractClaimsFromToken(c.Query("token"))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "unauthorized"})
		_ = c.Close()
		return
	}

	utils.DefaultNotifier.Register(tc.UserID, c)
	defer utils.DefaultNotifier.Unregister(tc.UserID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
