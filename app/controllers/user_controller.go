package controllers

import (
	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/ersultanb/carlink-backend/app/queries"
	"github.com/ersultanb/carlink-backend/pkg/database"
	"github.com/ersultanb/carlink-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetFavorites(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	userQueries := queries.UserQueries{DB: database.DB}
	favorites, err := userQueries.GetFavorites(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load favorites"})
	}
	return c.Status(fiber.StatusOK).JSON(favorites)
}

func AddFavorite(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	saleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}

	userQueries := queries.UserQueries{DB: database.DB}
	if err := userQueries.AddFavorite(userID, saleID); err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add favorite"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Added to favorites"})
}

func RemoveFavorite(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	saleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}

	userQueries := queries.UserQueries{DB: database.DB}
	if err := userQueries.RemoveFavorite(userID, saleID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove favorite"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Removed from favorites"})
}

// GetSellerProfile is the public seller page: contact details plus the
// seller's approved listings.
func GetSellerProfile(c *fiber.Ctx) error {
	sellerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid seller id"})
	}

	userQueries := queries.UserQueries{DB: database.DB}
	seller, err := userQueries.GetUserByID(sellerID)
	if err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Seller not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load seller"})
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	listings, err := saleQueries.GetApprovedSalesBySeller(sellerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listings"})
	}

	profile := models.SellerProfile{
		ID:       seller.ID,
		Name:     seller.Name,
		Phone:    seller.Phone,
		City:     seller.City,
		Role:     seller.Role,
		Listings: listings,
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}
