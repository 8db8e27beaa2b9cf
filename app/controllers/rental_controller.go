package controllers

import (
	"fmt"
	"time"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/ersultanb/carlink-backend/app/queries"
	"github.com/ersultanb/carlink-backend/pkg/database"
	"github.com/ersultanb/carlink-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func CreateRental(c *fiber.Ctx) error {
	ownerID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	payload := &models.CreateRentalRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	images := payload.Images
	if images == nil {
		images = []string{}
	}
	availability := payload.Availability
	if availability == nil {
		availability = []models.DateRange{}
	}

	listing := &models.RentalListing{
		ID:            uuid.New(),
		RentalOwnerID: ownerID,
		Title:         payload.Title,
		Description:   payload.Description,
		PricePerDay:   payload.PricePerDay,
		City:          payload.City,
		Brand:         payload.Brand,
		Model:         payload.Model,
		Year:          payload.Year,
		Mileage:       payload.Mileage,
		Fuel:          payload.Fuel,
		Gearbox:       payload.Gearbox,
		Images:        images,
		Availability:  availability,
		Status:        models.ListingStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	rentalQueries := queries.RentalQueries{DB: database.DB}
	if err := rentalQueries.CreateRental(listing); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create rental"})
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

// GetRentals is the public discovery read: approved rentals matching the
// filters, minus any rental already confirmed for the requested window.
func GetRentals(c *fiber.Ctx) error {
	minPrice, err := parsePriceParam(c, "minPrice")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	maxPrice, err := parsePriceParam(c, "maxPrice")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	filter := models.RentalFilter{
		City:     c.Query("city"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}

	startRaw, endRaw := c.Query("startDate"), c.Query("endDate")
	if startRaw != "" && endRaw != "" {
		start, err := utils.ParseDate(startRaw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		end, err := utils.ParseDate(endRaw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if !end.After(start) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid dates"})
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	rentalQueries := queries.RentalQueries{DB: database.DB}
	rentals, err := rentalQueries.GetApprovedRentals(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load rentals"})
	}
	return c.Status(fiber.StatusOK).JSON(rentals)
}

func GetRentalByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rental id"})
	}

	rentalQueries := queries.RentalQueries{DB: database.DB}
	rental, err := rentalQueries.GetApprovedRentalByID(id)
	if err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rental not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load rental"})
	}
	return c.Status(fiber.StatusOK).JSON(rental)
}

func GetMyRentals(c *fiber.Ctx) error {
	ownerID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	rentalQueries := queries.RentalQueries{DB: database.DB}
	rentals, err := rentalQueries.GetRentalsByOwner(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load rentals"})
	}
	return c.Status(fiber.StatusOK).JSON(rentals)
}

func GetAdminRentals(c *fiber.Ctx) error {
	rentalQueries := queries.RentalQueries{DB: database.DB}
	rentals, err := rentalQueries.GetAllRentals()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load rentals"})
	}
	return c.Status(fiber.StatusOK).JSON(rentals)
}

// AdminUpdateRentalStatus moderates a rental listing. The owner is
// notified once per effective status change.
func AdminUpdateRentalStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rental id"})
	}

	payload := &models.UpdateStatusRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	switch payload.Status {
	case models.ListingStatusApproved, models.ListingStatusRejected, models.ListingStatusUnavailable:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	rentalQueries := queries.RentalQueries{DB: database.DB}
	rental, err := rentalQueries.GetRentalByID(id)
	if err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rental not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load rental"})
	}

	if rental.Status != payload.Status && !models.AdminModerationAllowed(rental.Status, payload.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status transition not allowed"})
	}

	changed, err := rentalQueries.UpdateRentalStatusIfChanged(id, payload.Status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update status"})
	}
	if changed {
		notifyUser(rental.RentalOwnerID,
			fmt.Sprintf("Your rental %q was %s by the moderators", rental.Title, payload.Status),
			payload.Status)
	}

	rental.Status = payload.Status
	return c.Status(fiber.StatusOK).JSON(rental)
}
