package routes

import (
	"github.com/ersultanb/carlink-backend/app/controllers"
	"github.com/ersultanb/carlink-backend/pkg/middleware"
	"github.com/ersultanb/carlink-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func RegisterBookingRoutes(app *fiber.App) {
	bookings := app.Group("/bookings", middleware.JWTProtected())

	bookings.Get("/mine", middleware.RoleRequired(utils.RoleCustomer), controllers.GetMyBookings)
	bookings.Put("/:id/status", middleware.RoleRequired(utils.RoleRentalOwner), controllers.UpdateBookingStatus)
}
