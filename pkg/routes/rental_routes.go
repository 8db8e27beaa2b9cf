package routes

import (
	"github.com/ersultanb/carlink-backend/app/controllers"
	"github.com/ersultanb/carlink-backend/pkg/middleware"
	"github.com/ersultanb/carlink-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func RegisterRentalRoutes(app *fiber.App) {
	rental := app.Group("/rental")

	owner := middleware.RoleRequired(utils.RoleRentalOwner)
	admin := middleware.RoleRequired(utils.RoleAdmin)

	// Public
	rental.Get("/", controllers.GetRentals)

	// Rental owner
	rental.Post("/", middleware.JWTProtected(), owner, controllers.CreateRental)
	rental.Get("/mine", middleware.JWTProtected(), owner, controllers.GetMyRentals)
	rental.Get("/owner/bookings", middleware.JWTProtected(), owner, controllers.GetOwnerBookings)

	// Admin
	rental.Get("/admin", middleware.JWTProtected(), admin, controllers.GetAdminRentals)
	rental.Put("/admin/:id/status", middleware.JWTProtected(), admin, controllers.AdminUpdateRentalStatus)

	// Booking (customer)
	rental.Post("/:id/book", middleware.JWTProtected(), middleware.RoleRequired(utils.RoleCustomer), controllers.CreateBooking)

	// Dynamic public route last
	rental.Get("/:id", controllers.GetRentalByID)
}
