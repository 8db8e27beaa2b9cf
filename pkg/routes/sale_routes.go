package routes

import (
	"github.com/ersultanb/carlink-backend/app/controllers"
	"github.com/ersultanb/carlink-backend/pkg/middleware"
	"github.com/ersultanb/carlink-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func RegisterSaleRoutes(app *fiber.App) {
	sale := app.Group("/sale")

	// Public
	sale.Get("/", controllers.GetApprovedSales)

	// Seller
	seller := middleware.RoleRequired(utils.RoleSeller, utils.RoleAdmin)
	sale.Get("/mine", middleware.JWTProtected(), seller, controllers.GetMySales)
	sale.Post("/", middleware.JWTProtected(), seller, controllers.CreateSale)
	sale.Put("/admin/:id/status", middleware.JWTProtected(), middleware.RoleRequired(utils.RoleAdmin), controllers.AdminUpdateSaleStatus)
	sale.Put("/:id/status", middleware.JWTProtected(), seller, controllers.UpdateSaleStatusOwner)
	sale.Put("/:id", middleware.JWTProtected(), seller, controllers.UpdateSale)
	sale.Delete("/:id", middleware.JWTProtected(), seller, controllers.DeleteSale)

	// Dynamic public route registered last so it does not shadow the
	// fixed paths above.
	sale.Get("/:id", controllers.GetSaleByID)
}
