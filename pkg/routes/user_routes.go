package routes

import (
	"github.com/ersultanb/carlink-backend/app/controllers"
	"github.com/ersultanb/carlink-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterUserRoutes(app *fiber.App) {
	user := app.Group("/user")

	// Public seller page
	user.Get("/seller/:id", controllers.GetSellerProfile)

	favorites := user.Group("/favorites", middleware.JWTProtected())
	favorites.Get("/", controllers.GetFavorites)
	favorites.Post("/:id", controllers.AddFavorite)
	favorites.Delete("/:id", controllers.RemoveFavorite)
}
