package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/ersultanb/carlink-backend/app/queries"
	"github.com/ersultanb/carlink-backend/pkg/database"
	"github.com/ersultanb/carlink-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultPageLimit = 12

func parsePriceParam(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &v, nil
}

func CreateSale(c *fiber.Ctx) error {
	sellerID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	payload := &models.CreateSaleRequest{}
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

	listing := &models.SaleListing{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		City:        payload.City,
		Brand:       payload.Brand,
		Model:       payload.Model,
		Year:        payload.Year,
		Mileage:     payload.Mileage,
		Fuel:        payload.Fuel,
		Gearbox:     payload.Gearbox,
		Images:      images,
		Status:      models.ListingStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	if err := saleQueries.CreateSale(listing); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create listing"})
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

// GetApprovedSales is the public discovery read: approved listings only,
// filterable and paginated.
func GetApprovedSales(c *fiber.Ctx) error {
	minPrice, err := parsePriceParam(c, "minPrice")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	maxPrice, err := parsePriceParam(c, "maxPrice")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultPageLimit)
	if limit < 1 || limit > 100 {
		limit = defaultPageLimit
	}

	filter := models.SaleFilter{
		Brand:    c.Query("brand"),
		City:     c.Query("city"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     page,
		Limit:    limit,
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	items, total, err := saleQueries.GetApprovedSales(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listings"})
	}

	return c.Status(fiber.StatusOK).JSON(models.NewSaleListResponse(items, total, page, limit))
}

func GetMySales(c *fiber.Ctx) error {
	sellerID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	listings, err := saleQueries.GetSalesBySeller(sellerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listings"})
	}
	return c.Status(fiber.StatusOK).JSON(listings)
}

func GetSaleByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	listing, err := saleQueries.GetSaleByID(id)
	if err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listing"})
	}

	if listing.Status != models.ListingStatusApproved {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This listing is not public"})
	}
	return c.Status(fiber.StatusOK).JSON(listing)
}

// errResponded signals that the helper already wrote the error response.
var errResponded = errors.New("response already written")

// fetchOwnedSale loads the listing and verifies the caller is the seller
// or an admin. On failure the response has already been written and
// errResponded is returned.
func fetchOwnedSale(c *fiber.Ctx) (models.SaleListing, error) {
	var listing models.SaleListing

	tc, err := utils.ExtractClaimsFromHeader(c.Get("Authorization"))
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		return listing, errResponded
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
		return listing, errResponded
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	listing, err = saleQueries.GetSaleByID(id)
	if err != nil {
		if err == queries.ErrNotFound {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		} else {
			_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listing"})
		}
		return listing, errResponded
	}

	if listing.SellerID != tc.UserID && tc.Role != utils.RoleAdmin {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
		return listing, errResponded
	}
	return listing, nil
}

// UpdateSale applies field updates from the owner. The request DTO has
// no status field, so the moderation state cannot be changed here.
func UpdateSale(c *fiber.Ctx) error {
	listing, err := fetchOwnedSale(c)
	if err != nil {
		return nil
	}

	payload := &models.UpdateSaleRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	if err := saleQueries.UpdateSaleFields(listing.ID, payload); err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := saleQueries.GetSaleByID(listing.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listing"})
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// UpdateSaleStatusOwner toggles a listing between approved and sold.
func UpdateSaleStatusOwner(c *fiber.Ctx) error {
	listing, err := fetchOwnedSale(c)
	if err != nil {
		return nil
	}

	payload := &models.UpdateStatusRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !models.OwnerToggleAllowed(listing.Status, payload.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	changed, err := saleQueries.UpdateSaleStatusIfChanged(listing.ID, payload.Status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update status"})
	}
	if changed {
		notifyUser(listing.SellerID,
			fmt.Sprintf("Your listing %q is now %s", listing.Title, payload.Status),
			payload.Status)
	}

	listing.Status = payload.Status
	return c.Status(fiber.StatusOK).JSON(listing)
}

// AdminUpdateSaleStatus is the moderation endpoint: pending listings are
// approved or rejected, the seller is notified once per effective change.
func AdminUpdateSaleStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}

	payload := &models.UpdateStatusRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if payload.Status != models.ListingStatusApproved && payload.Status != models.ListingStatusRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	listing, err := saleQueries.GetSaleByID(id)
	if err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listing"})
	}

	if listing.Status != payload.Status && !models.AdminModerationAllowed(listing.Status, payload.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status transition not allowed"})
	}

	changed, err := saleQueries.UpdateSaleStatusIfChanged(id, payload.Status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update status"})
	}
	if changed {
		notifyUser(listing.SellerID,
			fmt.Sprintf("Your listing %q was %s by the moderators", listing.Title, payload.Status),
			payload.Status)
	}

	listing.Status = payload.Status
	return c.Status(fiber.StatusOK).JSON(listing)
}

func DeleteSale(c *fiber.Ctx) error {
	listing, err := fetchOwnedSale(c)
	if err != nil {
		return nil
	}

	saleQueries := queries.SaleQueries{DB: database.DB}
	if err := saleQueries.DeleteSale(listing.ID); err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete listing"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Listing deleted successfully"})
}
