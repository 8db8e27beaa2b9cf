package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"
)

type Booking struct {
	ID         uuid.UUID `json:"id"`
	RentalID   uuid.UUID `json:"rental_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateBookingRequest carries the raw date strings from the client. A
// status field supplied by the client is parsed but never honored:
// NewBooking forces every new booking to pending.
type CreateBookingRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Status    string `json:"status"`
}

// NewBooking builds a pending booking for the given rental and customer.
func NewBooking(rentalID, customerID uuid.UUID, start, end time.Time) *Booking {
	now := time.Now()
	return &Booking{
		ID:         uuid.New(),
		RentalID:   rentalID,
		CustomerID: customerID,
		StartDate:  start,
		EndDate:    end,
		Status:     BookingStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// BookingDecisionAllowed reports whether a booking may move from old to
// new. Owners only decide pending bookings; confirmed and rejected are
// terminal.
func BookingDecisionAllowed(old, new string) bool {
	return old == BookingStatusPending &&
		(new == BookingStatusConfirmed || new == BookingStatusRejected)
}

// BookingDetail is a booking joined with its rental and customer, as
// returned by the owner and customer listing endpoints.
type BookingDetail struct {
	Booking
	RentalTitle   string    `json:"rental_title"`
	PricePerDay   float64   `json:"price_per_day"`
	RentalCity    string    `json:"rental_city"`
	RentalOwnerID uuid.UUID `json:"-"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
}
