package controllers

import (
	"fmt"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/ersultanb/carlink-backend/app/queries"
	"github.com/ersultanb/carlink-backend/pkg/database"
	"github.com/ersultanb/carlink-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateBooking handles POST /rental/:id/book. Date validation runs
// before anything touches the database, and the stored status is always
// pending no matter what the client sent. Only confirmed bookings count
// against the requested window, so competing pending requests may
// coexist: first confirmed wins.
func CreateBooking(c *fiber.Ctx) error {
	customerID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	rentalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rental id"})
	}

	payload := &models.CreateBookingRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	start, err := utils.ParseDate(payload.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid dates"})
	}
	end, err := utils.ParseDate(payload.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid dates"})
	}
	if !end.After(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid dates"})
	}

	rentalQueries := queries.RentalQueries{DB: database.DB}
	rental, err := rentalQueries.GetApprovedRentalByID(rentalID)
	if err != nil {
		if err == queries.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rental not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load rental"})
	}

	bookingQueries := queries.BookingQueries{DB: database.DB}
	conflict, err := bookingQueries.HasConfirmedOverlap(rentalID, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check availability"})
	}
	if conflict {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already booked for these dates"})
	}

	booking := models.NewBooking(rentalID, customerID, start, end)
	if err := bookingQueries.CreateBooking(booking); err != nil {
		if err == queries.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already booked for these dates"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	notifyUser(rental.RentalOwnerID,
		fmt.Sprintf("New booking request for %q from %s to %s",
			rental.Title, start.Format("2006-01-02"), end.Format("2006-01-02")),
		models.NotificationTypePending)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetOwnerBookings lists bookings across all of the owner's rentals.
func GetOwnerBookings(c *fiber.Ctx) error {
	ownerID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	bookingQueries := queries.BookingQueries{DB: database.DB}
	bookings, err := bookingQueries.GetBookingsForOwner(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
	}
	return c.Status(fiber.StatusOK).JSON(bookings)
}

func GetMyBookings(c *fiber.Ctx) error {
	customerID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	bookingQueries := queries.BookingQueries{DB: database.DB}
	bookings, err := bookingQueries.GetBookingsForCustomer(customerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
	}
	return c.Status(fiber.StatusOK).JSON(bookings)
}

// UpdateBookingStatus confirms or rejects a pending booking. Only the
// owner of the parent rental may decide, and a confirmation that would
// overlap another confirmed booking fails with a conflict.
func UpdateBookingStatus(c *fiber.Ctx) error {
	actorID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	payload := &models.UpdateStatusRequest{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if payload.Status != models.BookingStatusConfirmed && payload.Status != models.BookingStatusRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	bookingQueries := queries.BookingQueries{DB: database.DB}
	booking, err := bookingQueries.DecideBooking(bookingID, actorID, payload.Status)
	if err != nil {
		switch err {
		case queries.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		case queries.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		case queries.ErrBadTransition:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status transition not allowed"})
		case queries.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already booked for these dates"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	rentalQueries := queries.RentalQueries{DB: database.DB}
	rental, rerr := rentalQueries.GetRentalByID(booking.RentalID)
	title := "your rental"
	if rerr == nil {
		title = fmt.Sprintf("%q", rental.Title)
	}

	if payload.Status == models.BookingStatusConfirmed {
		notifyUser(booking.CustomerID,
			fmt.Sprintf("Your booking for %s was confirmed", title),
			models.NotificationTypeApproved)
	} else {
		notifyUser(booking.CustomerID,
			fmt.Sprintf("Your booking for %s was rejected", title),
			models.NotificationTypeRejected)
	}

	return c.Status(fiber.StatusOK).JSON(booking)
}
