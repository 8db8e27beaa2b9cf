package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingAlwaysPending(t *testing.T) {
	rentalID, customerID := uuid.New(), uuid.New()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	b := NewBooking(rentalID, customerID, start, end)

	assert.Equal(t, BookingStatusPending, b.Status)
	assert.Equal(t, rentalID, b.RentalID)
	assert.Equal(t, customerID, b.CustomerID)
	assert.Equal(t, start, b.StartDate)
	assert.Equal(t, end, b.EndDate)
	assert.NotEqual(t, uuid.Nil, b.ID)
}

func TestBookingDecisionAllowed(t *testing.T) {
	tests := []struct {
		old, new string
		want     bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusRejected, true},
		{BookingStatusPending, BookingStatusPending, false},
		{BookingStatusConfirmed, BookingStatusRejected, false},
		{BookingStatusConfirmed, BookingStatusConfirmed, false},
		{BookingStatusRejected, BookingStatusConfirmed, false},
		{BookingStatusPending, "cancelled", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BookingDecisionAllowed(tt.old, tt.new), "%s -> %s", tt.old, tt.new)
	}
}
