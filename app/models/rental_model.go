package models

import (
	"time"

	"github.com/google/uuid"
)

// DateRange is a half-open interval [StartDate, EndDate).
type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type RentalListing struct {
	ID            uuid.UUID   `json:"id"`
	RentalOwnerID uuid.UUID   `json:"rental_owner_id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	PricePerDay   float64     `json:"price_per_day"`
	City          string      `json:"city"`
	Brand         string      `json:"brand"`
	Model         string      `json:"model"`
	Year          int         `json:"year"`
	Mileage       int         `json:"mileage,omitempty"`
	Fuel          string      `json:"fuel,omitempty"`
	Gearbox       string      `json:"gearbox,omitempty"`
	Images        []string    `json:"images"`
	Availability  []DateRange `json:"availability"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type CreateRentalRequest struct {
	Title        string      `json:"title" validate:"required,max=200"`
	Description  string      `json:"description"`
	PricePerDay  float64     `json:"pricePerDay" validate:"required,gt=0"`
	City         string      `json:"city" validate:"required"`
	Brand        string      `json:"brand" validate:"required"`
	Model        string      `json:"model" validate:"required"`
	Year         int         `json:"year" validate:"required,gte=1950"`
	Mileage      int         `json:"mileage" validate:"gte=0"`
	Fuel         string      `json:"fuel"`
	Gearbox      string      `json:"gearbox"`
	Images       []string    `json:"images"`
	Availability []DateRange `json:"availability"`
}

type RentalFilter struct {
	City     string
	MinPrice *float64
	MaxPrice *float64
	// When both are set, rentals with a confirmed booking overlapping
	// [StartDate, EndDate) are excluded from the results.
	StartDate *time.Time
	EndDate   *time.Time
}
