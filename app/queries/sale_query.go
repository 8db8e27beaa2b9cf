package queries

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type SaleQueries struct {
	DB *sql.DB
}

const saleColumns = `id, seller_id, title, description, price, city, brand, model, year, mileage, fuel, gearbox, images, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSaleListing(r rowScanner) (models.SaleListing, error) {
	var s models.SaleListing
	var description, fuel, gearbox sql.NullString
	var mileage sql.NullInt64
	err := r.Scan(
		&s.ID, &s.SellerID, &s.Title, &description, &s.Price, &s.City, &s.Brand, &s.Model, &s.Year,
		&mileage, &fuel, &gearbox, pq.Array(&s.Images), &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return s, err
	}
	s.Description = description.String
	s.Fuel = fuel.String
	s.Gearbox = gearbox.String
	s.Mileage = int(mileage.Int64)
	if s.Images == nil {
		s.Images = []string{}
	}
	return s, nil
}

func (q *SaleQueries) CreateSale(s *models.SaleListing) error {
	query := `INSERT INTO sale_listings (id, seller_id, title, description, price, city, brand, model, year, mileage, fuel, gearbox, images, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := q.DB.Exec(query,
		s.ID, s.SellerID, s.Title, s.Description, s.Price, s.City, s.Brand, s.Model, s.Year,
		s.Mileage, s.Fuel, s.Gearbox, pq.Array(s.Images), s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		println(err.Error())
		return errors.New("unable to create sale listing, DB error")
	}
	return nil
}

func (q *SaleQueries) GetSaleByID(id uuid.UUID) (models.SaleListing, error) {
	query := `SELECT ` + saleColumns + ` FROM sale_listings WHERE id = $1`
	s, err := scanSaleListing(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return s, ErrNotFound
		}
		println(err.Error())
		return s, errors.New("unable to get sale listing, DB error")
	}
	return s, nil
}

func (q *SaleQueries) GetSalesBySeller(sellerID uuid.UUID) ([]models.SaleListing, error) {
	return q.querySales(`SELECT `+saleColumns+` FROM sale_listings WHERE seller_id = $1 ORDER BY created_at DESC`, sellerID)
}

func (q *SaleQueries) GetApprovedSalesBySeller(sellerID uuid.UUID) ([]models.SaleListing, error) {
	return q.querySales(`SELECT `+saleColumns+` FROM sale_listings WHERE seller_id = $1 AND status = 'approved' ORDER BY created_at DESC`, sellerID)
}

func (q *SaleQueries) querySales(query string, args ...interface{}) ([]models.SaleListing, error) {
	listings := []models.SaleListing{}
	rows, err := q.DB.Query(query, args...)
	if err != nil {
		println(err.Error())
		return listings, errors.New("unable to query sale listings")
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanSaleListing(rows)
		if err != nil {
			return listings, err
		}
		listings = append(listings, s)
	}
	return listings, rows.Err()
}

// buildSaleFilterWhere renders the WHERE clause for the public approved
// listing query. Brand and city match case-insensitively on substrings,
// price bounds are inclusive.
func buildSaleFilterWhere(f models.SaleFilter) (string, []interface{}) {
	clauses := []string{"status = 'approved'"}
	args := []interface{}{}
	argID := 1

	if f.Brand != "" {
		clauses = append(clauses, fmt.Sprintf("brand ILIKE $%d", argID))
		args = append(args, "%"+f.Brand+"%")
		argID++
	}
	if f.City != "" {
		clauses = append(clauses, fmt.Sprintf("city ILIKE $%d", argID))
		args = append(args, "%"+f.City+"%")
		argID++
	}
	if f.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price >= $%d", argID))
		args = append(args, *f.MinPrice)
		argID++
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price <= $%d", argID))
		args = append(args, *f.MaxPrice)
		argID++
	}

	return strings.Join(clauses, " AND "), args
}

// GetApprovedSales returns one page of approved listings matching the
// filter, newest first, plus the total match count.
func (q *SaleQueries) GetApprovedSales(f models.SaleFilter) ([]models.SaleListing, int, error) {
	where, args := buildSaleFilterWhere(f)

	var total int
	countQuery := `SELECT count(*) FROM sale_listings WHERE ` + where
	if err := q.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		println(err.Error())
		return nil, 0, errors.New("unable to count sale listings")
	}

	offset := (f.Page - 1) * f.Limit
	query := fmt.Sprintf(`SELECT %s FROM sale_listings WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		saleColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, offset)

	items, err := q.querySales(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (q *SaleQueries) UpdateSaleFields(id uuid.UUID, req *models.UpdateSaleRequest) error {
	setClauses := []string{}
	args := []interface{}{}
	argID := 1

	add := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argID))
		args = append(args, val)
		argID++
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	if req.City != nil {
		add("city", *req.City)
	}
	if req.Brand != nil {
		add("brand", *req.Brand)
	}
	if req.Model != nil {
		add("model", *req.Model)
	}
	if req.Year != nil {
		add("year", *req.Year)
	}
	if req.Mileage != nil {
		add("mileage", *req.Mileage)
	}
	if req.Fuel != nil {
		add("fuel", *req.Fuel)
	}
	if req.Gearbox != nil {
		add("gearbox", *req.Gearbox)
	}
	if req.Images != nil {
		add("images", pq.Array(req.Images))
	}

	if len(setClauses) == 0 {
		return errors.New("no fields to update")
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf(`UPDATE sale_listings SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	res, err := q.DB.Exec(query, args...)
	if err != nil {
		println(err.Error())
		return errors.New("unable to update sale listing, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSaleStatusIfChanged sets the status and reports whether the
// stored value actually changed, so callers emit at most one
// notification per effective transition.
func (q *SaleQueries) UpdateSaleStatusIfChanged(id uuid.UUID, status string) (bool, error) {
	query := `UPDATE sale_listings SET status = $2, updated_at = now() WHERE id = $1 AND status <> $2`
	res, err := q.DB.Exec(query, id, status)
	if err != nil {
		println(err.Error())
		return false, errors.New("unable to update sale status, DB error")
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

func (q *SaleQueries) DeleteSale(id uuid.UUID) error {
	res, err := q.DB.Exec(`DELETE FROM sale_listings WHERE id = $1`, id)
	if err != nil {
		println(err.Error())
		return errors.New("unable to delete sale listing, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
