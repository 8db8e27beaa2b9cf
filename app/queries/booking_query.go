package queries

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BookingQueries struct {
	DB *sql.DB
}

// isOverlapViolation reports whether a pq error comes from the exclusion
// constraint on confirmed bookings (23P01) or a unique conflict (23505).
func isOverlapViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && (pqErr.Code == "23P01" || pqErr.Code == "23505")
}

// HasConfirmedOverlap reports whether the rental has a confirmed booking
// overlapping the half-open window [start, end). Pending bookings never
// block a request.
func (q *BookingQueries) HasConfirmedOverlap(rentalID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE rental_id = $1 AND status = 'confirmed'
		  AND start_date < $2 AND end_date > $3
	)`
	if err := q.DB.QueryRow(query, rentalID, end, start).Scan(&exists); err != nil {
		println(err.Error())
		return false, errors.New("unable to check booking conflicts, DB error")
	}
	return exists, nil
}

func (q *BookingQueries) CreateBooking(b *models.Booking) error {
	query := `INSERT INTO bookings (id, rental_id, customer_id, start_date, end_date, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.DB.Exec(query, b.ID, b.RentalID, b.CustomerID, b.StartDate, b.EndDate, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isOverlapViolation(err) {
			return ErrConflict
		}
		println(err.Error())
		return errors.New("unable to create booking, DB error")
	}
	return nil
}

// DecideBooking moves a pending booking to confirmed or rejected on
// behalf of the owner of the parent rental. The whole decision runs in
// one transaction: the booking row is locked, ownership and the pending
// state are verified, and a confirmation re-checks the confirmed-overlap
// invariant before the write. The exclusion constraint in the schema
// backstops the check; either path surfaces as ErrConflict.
func (q *BookingQueries) DecideBooking(bookingID, actorID uuid.UUID, newStatus string) (models.Booking, error) {
	var b models.Booking
	var ownerID uuid.UUID

	tx, err := q.DB.Begin()
	if err != nil {
		return b, errors.New("unable to start transaction")
	}
	defer tx.Rollback()

	query := `SELECT b.id, b.rental_id, b.customer_id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at, r.rental_owner_id
			  FROM bookings b
			  JOIN rental_listings r ON r.id = b.rental_id
			  WHERE b.id = $1
			  FOR UPDATE OF b`
	err = tx.QueryRow(query, bookingID).Scan(
		&b.ID, &b.RentalID, &b.CustomerID, &b.StartDate, &b.EndDate, &b.Status, &b.CreatedAt, &b.UpdatedAt, &ownerID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return b, ErrNotFound
		}
		println(err.Error())
		return b, errors.New("unable to get booking, DB error")
	}

	if ownerID != actorID {
		return b, ErrForbidden
	}
	if !models.BookingDecisionAllowed(b.Status, newStatus) {
		return b, ErrBadTransition
	}

	if newStatus == models.BookingStatusConfirmed {
		var conflict bool
		overlap := `SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE rental_id = $1 AND status = 'confirmed' AND id <> $2
			  AND start_date < $3 AND end_date > $4
		)`
		if err := tx.QueryRow(overlap, b.RentalID, b.ID, b.EndDate, b.StartDate).Scan(&conflict); err != nil {
			println(err.Error())
			return b, errors.New("unable to check booking conflicts, DB error")
		}
		if conflict {
			return b, ErrConflict
		}
	}

	_, err = tx.Exec(`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`, b.ID, newStatus)
	if err != nil {
		if isOverlapViolation(err) {
			return b, ErrConflict
		}
		println(err.Error())
		return b, errors.New("unable to update booking, DB error")
	}

	if err := tx.Commit(); err != nil {
		if isOverlapViolation(err) {
			return b, ErrConflict
		}
		return b, errors.New("unable to commit transaction")
	}

	b.Status = newStatus
	return b, nil
}

const bookingDetailColumns = `b.id, b.rental_id, b.customer_id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at,
	r.title, r.price_per_day, r.city, r.rental_owner_id, u.name, u.phone`

func (q *BookingQueries) scanBookingDetails(query string, args ...interface{}) ([]models.BookingDetail, error) {
	details := []models.BookingDetail{}
	rows, err := q.DB.Query(query, args...)
	if err != nil {
		println(err.Error())
		return details, errors.New("unable to query bookings")
	}
	defer rows.Close()

	for rows.Next() {
		var d models.BookingDetail
		if err := rows.Scan(
			&d.ID, &d.RentalID, &d.CustomerID, &d.StartDate, &d.EndDate, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.RentalTitle, &d.PricePerDay, &d.RentalCity, &d.RentalOwnerID, &d.CustomerName, &d.CustomerPhone,
		); err != nil {
			return details, errors.New("error scanning booking row")
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetBookingsForOwner lists bookings on every rental the owner has,
// newest first.
func (q *BookingQueries) GetBookingsForOwner(ownerID uuid.UUID) ([]models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + `
			  FROM bookings b
			  JOIN rental_listings r ON r.id = b.rental_id
			  JOIN users u ON u.uid = b.customer_id
			  WHERE r.rental_owner_id = $1
			  ORDER BY b.created_at DESC`
	return q.scanBookingDetails(query, ownerID)
}

// GetBookingsForCustomer lists the customer's own bookings, newest first.
func (q *BookingQueries) GetBookingsForCustomer(customerID uuid.UUID) ([]models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + `
			  FROM bookings b
			  JOIN rental_listings r ON r.id = b.rental_id
			  JOIN users u ON u.uid = b.customer_id
			  WHERE b.customer_id = $1
			  ORDER BY b.created_at DESC`
	return q.scanBookingDetails(query, customerID)
}
