package queries

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newBookingMock(t *testing.T) (*BookingQueries, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &BookingQueries{DB: db}, mock
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

var bookingCols = []string{
	"id", "rental_id", "customer_id", "start_date", "end_date", "status",
	"created_at", "updated_at", "rental_owner_id",
}

func bookingRow(bookingID, rentalID, customerID, ownerID uuid.UUID, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingCols).AddRow(
		bookingID.String(), rentalID.String(), customerID.String(),
		day("2024-06-01"), day("2024-06-05"), status, now, now, ownerID.String(),
	)
}

func TestIsOverlapViolation(t *testing.T) {
	assert.True(t, isOverlapViolation(&pq.Error{Code: "23P01"}))
	assert.True(t, isOverlapViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isOverlapViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isOverlapViolation(errors.New("plain")))
}

// The probe passes the requested window as (end, start) so that the SQL
// condition start_date < $2 AND end_date > $3 implements the half-open
// overlap rule.
func TestHasConfirmedOverlap(t *testing.T) {
	q, mock := newBookingMock(t)
	rentalID := uuid.New()
	start, end := day("2024-06-01"), day("2024-06-05")

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(rentalID, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	conflict, err := q.HasConfirmedOverlap(rentalID, start, end)
	assert.NoError(t, err)
	assert.True(t, conflict)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(rentalID, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	conflict, err = q.HasConfirmedOverlap(rentalID, start, end)
	assert.NoError(t, err)
	assert.False(t, conflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingExclusionViolation(t *testing.T) {
	q, mock := newBookingMock(t)
	b := models.NewBooking(uuid.New(), uuid.New(), day("2024-06-01"), day("2024-06-05"))

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23P01"})

	assert.Equal(t, ErrConflict, q.CreateBooking(b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideBookingNotFound(t *testing.T) {
	q, mock := newBookingMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE OF b").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := q.DecideBooking(uuid.New(), uuid.New(), models.BookingStatusConfirmed)
	assert.Equal(t, ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideBookingForbiddenForNonOwner(t *testing.T) {
	q, mock := newBookingMock(t)
	bookingID, rentalID := uuid.New(), uuid.New()
	ownerID, actorID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE OF b").
		WithArgs(bookingID).
		WillReturnRows(bookingRow(bookingID, rentalID, uuid.New(), ownerID, models.BookingStatusPending))
	mock.ExpectRollback()

	_, err := q.DecideBooking(bookingID, actorID, models.BookingStatusConfirmed)
	assert.Equal(t, ErrForbidden, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideBookingOnlyFromPending(t *testing.T) {
	q, mock := newBookingMock(t)
	bookingID, rentalID, ownerID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE OF b").
		WithArgs(bookingID).
		WillReturnRows(bookingRow(bookingID, rentalID, uuid.New(), ownerID, models.BookingStatusRejected))
	mock.ExpectRollback()

	_, err := q.DecideBooking(bookingID, ownerID, models.BookingStatusConfirmed)
	assert.Equal(t, ErrBadTransition, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Confirming a booking whose window overlaps another confirmed booking
// on the same rental must fail with ErrConflict; the in-transaction
// re-check excludes the booking being decided.
func TestDecideBookingConfirmConflict(t *testing.T) {
	q, mock := newBookingMock(t)
	bookingID, rentalID, ownerID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE OF b").
		WithArgs(bookingID).
		WillReturnRows(bookingRow(bookingID, rentalID, uuid.New(), ownerID, models.BookingStatusPending))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(rentalID.String(), bookingID.String(), day("2024-06-05"), day("2024-06-01")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := q.DecideBooking(bookingID, ownerID, models.BookingStatusConfirmed)
	assert.Equal(t, ErrConflict, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideBookingConfirm(t *testing.T) {
	q, mock := newBookingMock(t)
	bookingID, rentalID, ownerID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE OF b").
		WithArgs(bookingID).
		WillReturnRows(bookingRow(bookingID, rentalID, uuid.New(), ownerID, models.BookingStatusPending))
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(bookingID.String(), models.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b, err := q.DecideBooking(bookingID, ownerID, models.BookingStatusConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A rejection never needs the overlap re-check: the transaction goes
// straight from the locked read to the update.
func TestDecideBookingReject(t *testing.T) {
	q, mock := newBookingMock(t)
	bookingID, rentalID, ownerID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE OF b").
		WithArgs(bookingID).
		WillReturnRows(bookingRow(bookingID, rentalID, uuid.New(), ownerID, models.BookingStatusPending))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(bookingID.String(), models.BookingStatusRejected).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b, err := q.DecideBooking(bookingID, ownerID, models.BookingStatusRejected)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The exclusion constraint backstops the re-check: a 23P01 raised by the
// update surfaces as the same conflict error.
func TestDecideBookingConstraintBackstop(t *testing.T) {
	q, mock := newBookingMock(t)
	bookingID, rentalID, ownerID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE OF b").
		WithArgs(bookingID).
		WillReturnRows(bookingRow(bookingID, rentalID, uuid.New(), ownerID, models.BookingStatusPending))
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnError(&pq.Error{Code: "23P01"})
	mock.ExpectRollback()

	_, err := q.DecideBooking(bookingID, ownerID, models.BookingStatusConfirmed)
	assert.Equal(t, ErrConflict, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
