package routes

import (
	"github.com/ersultanb/carlink-backend/app/controllers"
	"github.com/ersultanb/carlink-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterNotificationRoutes(app *fiber.App) {
	notifications := app.Group("/notifications", middleware.JWTProtected())
	notifications.Get("/", controllers.GetNotifications)
	notifications.Put("/:id/read", controllers.MarkNotificationRead)

	app.Get("/ws/notifications", websocket.New(func(c *websocket.Conn) {
		controllers.NotificationsWsHandler(c)
	}))
}
