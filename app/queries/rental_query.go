package queries

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RentalQueries struct {
	DB *sql.DB
}

const rentalColumns = `id, rental_owner_id, title, description, price_per_day, city, brand, model, year, mileage, fuel, gearbox, images, availability, status, created_at, updated_at`

// qualifyColumns prefixes every column in a comma-separated list with a
// table alias.
func qualifyColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func scanRentalListing(r rowScanner) (models.RentalListing, error) {
	var l models.RentalListing
	var description, fuel, gearbox sql.NullString
	var mileage sql.NullInt64
	var availability []byte
	err := r.Scan(
		&l.ID, &l.RentalOwnerID, &l.Title, &description, &l.PricePerDay, &l.City, &l.Brand, &l.Model, &l.Year,
		&mileage, &fuel, &gearbox, pq.Array(&l.Images), &availability, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return l, err
	}
	l.Description = description.String
	l.Fuel = fuel.String
	l.Gearbox = gearbox.String
	l.Mileage = int(mileage.Int64)
	if l.Images == nil {
		l.Images = []string{}
	}
	l.Availability = []models.DateRange{}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &l.Availability); err != nil {
			return l, errors.New("error decoding rental availability")
		}
	}
	return l, nil
}

func (q *RentalQueries) CreateRental(l *models.RentalListing) error {
	availability, err := json.Marshal(l.Availability)
	if err != nil {
		return errors.New("error encoding rental availability")
	}

	query := `INSERT INTO rental_listings (id, rental_owner_id, title, description, price_per_day, city, brand, model, year, mileage, fuel, gearbox, images, availability, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = q.DB.Exec(query,
		l.ID, l.RentalOwnerID, l.Title, l.Description, l.PricePerDay, l.City, l.Brand, l.Model, l.Year,
		l.Mileage, l.Fuel, l.Gearbox, pq.Array(l.Images), availability, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		println(err.Error())
		return errors.New("unable to create rental listing, DB error")
	}
	return nil
}

func (q *RentalQueries) GetRentalByID(id uuid.UUID) (models.RentalListing, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_listings WHERE id = $1`
	l, err := scanRentalListing(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return l, ErrNotFound
		}
		println(err.Error())
		return l, errors.New("unable to get rental listing, DB error")
	}
	return l, nil
}

// GetApprovedRentalByID is the public detail read: non-approved rentals
// are reported as missing.
func (q *RentalQueries) GetApprovedRentalByID(id uuid.UUID) (models.RentalListing, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_listings WHERE id = $1 AND status = 'approved'`
	l, err := scanRentalListing(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return l, ErrNotFound
		}
		println(err.Error())
		return l, errors.New("unable to get rental listing, DB error")
	}
	return l, nil
}

// GetApprovedRentals lists approved rentals matching the filter. When a
// date window is set, a rental is excluded if it has at least one
// confirmed booking overlapping [StartDate, EndDate). The overlap test
// is scoped per rental via NOT EXISTS rather than a global booking scan.
func (q *RentalQueries) GetApprovedRentals(f models.RentalFilter) ([]models.RentalListing, error) {
	clauses := []string{"r.status = 'approved'"}
	args := []interface{}{}
	argID := 1

	if f.City != "" {
		clauses = append(clauses, fmt.Sprintf("r.city ILIKE $%d", argID))
		args = append(args, "%"+f.City+"%")
		argID++
	}
	if f.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("r.price_per_day >= $%d", argID))
		args = append(args, *f.MinPrice)
		argID++
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("r.price_per_day <= $%d", argID))
		args = append(args, *f.MaxPrice)
		argID++
	}
	if f.StartDate != nil && f.EndDate != nil {
		clauses = append(clauses, fmt.Sprintf(`NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.rental_id = r.id AND b.status = 'confirmed'
			  AND b.start_date < $%d AND b.end_date > $%d
		)`, argID, argID+1))
		args = append(args, *f.EndDate, *f.StartDate)
		argID += 2
	}

	query := fmt.Sprintf(`SELECT %s FROM rental_listings r WHERE %s ORDER BY r.created_at DESC`,
		qualifyColumns("r", rentalColumns), strings.Join(clauses, " AND "))

	return q.queryRentals(query, args...)
}

func (q *RentalQueries) GetAllRentals() ([]models.RentalListing, error) {
	return q.queryRentals(`SELECT ` + rentalColumns + ` FROM rental_listings ORDER BY created_at DESC`)
}

func (q *RentalQueries) GetRentalsByOwner(ownerID uuid.UUID) ([]models.RentalListing, error) {
	return q.queryRentals(`SELECT `+rentalColumns+` FROM rental_listings WHERE rental_owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (q *RentalQueries) queryRentals(query string, args ...interface{}) ([]models.RentalListing, error) {
	listings := []models.RentalListing{}
	rows, err := q.DB.Query(query, args...)
	if err != nil {
		println(err.Error())
		return listings, errors.New("unable to query rental listings")
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanRentalListing(rows)
		if err != nil {
			return listings, errors.New("error scanning rental listing row")
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// UpdateRentalStatusIfChanged sets the status and reports whether the
// stored value actually changed.
func (q *RentalQueries) UpdateRentalStatusIfChanged(id uuid.UUID, status string) (bool, error) {
	query := `UPDATE rental_listings SET status = $2, updated_at = now() WHERE id = $1 AND status <> $2`
	res, err := q.DB.Exec(query, id, status)
	if err != nil {
		println(err.Error())
		return false, errors.New("unable to update rental status, DB error")
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}
