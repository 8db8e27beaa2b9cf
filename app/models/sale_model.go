package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ListingStatusPending     = "pending"
	ListingStatusApproved    = "approved"
	ListingStatusRejected    = "rejected"
	ListingStatusSold        = "sold"
	ListingStatusUnavailable = "unavailable"
)

type SaleListing struct {
	ID          uuid.UUID `json:"id"`
	SellerID    uuid.UUID `json:"seller_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	City        string    `json:"city"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Mileage     int       `json:"mileage,omitempty"`
	Fuel        string    `json:"fuel,omitempty"`
	Gearbox     string    `json:"gearbox,omitempty"`
	Images      []string  `json:"images"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateSaleRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	City        string   `json:"city" validate:"required"`
	Brand       string   `json:"brand" validate:"required"`
	Model       string   `json:"model" validate:"required"`
	Year        int      `json:"year" validate:"required,gte=1950"`
	Mileage     int      `json:"mileage" validate:"gte=0"`
	Fuel        string   `json:"fuel"`
	Gearbox     string   `json:"gearbox"`
	Images      []string `json:"images"`
}

// UpdateSaleRequest deliberately has no status field: sellers change a
// listing's status only through the dedicated status endpoints.
type UpdateSaleRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	City        *string  `json:"city"`
	Brand       *string  `json:"brand"`
	Model       *string  `json:"model"`
	Year        *int     `json:"year"`
	Mileage     *int     `json:"mileage"`
	Fuel        *string  `json:"fuel"`
	Gearbox     *string  `json:"gearbox"`
	Images      []string `json:"images"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type SaleFilter struct {
	Brand    string
	City     string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

type SaleListResponse struct {
	Items []SaleListing `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}

// NewSaleListResponse normalizes pagination: pages = ceil(total/limit).
func NewSaleListResponse(items []SaleListing, total, page, limit int) SaleListResponse {
	if items == nil {
		items = []SaleListing{}
	}
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return SaleListResponse{Items: items, Total: total, Page: page, Pages: pages}
}

// AdminModerationAllowed reports whether an admin may move a listing from
// old to new. Moderation only decides pending listings; rejected and
// unavailable are terminal.
func AdminModerationAllowed(old, new string) bool {
	switch {
	case old == ListingStatusPending && (new == ListingStatusApproved || new == ListingStatusRejected):
		return true
	case old == ListingStatusApproved && new == ListingStatusUnavailable:
		return true
	}
	return false
}

// OwnerToggleAllowed reports whether the seller-facing status endpoint
// may move a sale listing from old to new (approved <-> sold only).
func OwnerToggleAllowed(old, new string) bool {
	return (old == ListingStatusApproved && new == ListingStatusSold) ||
		(old == ListingStatusSold && new == ListingStatusApproved)
}
