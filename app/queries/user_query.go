package queries

import (
	"database/sql"
	"errors"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserQueries struct {
	DB *sql.DB
}

func (q *UserQueries) CreateUser(u *models.User) error {
	query := `INSERT INTO users (uid, name, phone, password_hash, user_role, city, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := q.DB.Exec(query, u.ID, u.Name, u.Phone, u.PasswordHash, u.Role, u.City, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrConflictPhone
		}
		println(err.Error())
		return errors.New("unable to create user, DB error")
	}
	return nil
}

// ErrConflictPhone signals a duplicate phone number at registration.
var ErrConflictPhone = errors.New("user already exists with this phone")

func (q *UserQueries) GetUserByPhone(phone string) (models.User, error) {
	user := models.User{}

	query := `SELECT uid, name, phone, password_hash, user_role, city, created_at, updated_at
			  FROM users WHERE phone = $1`

	err := q.DB.QueryRow(query, phone).Scan(
		&user.ID,
		&user.Name,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.City,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return user, ErrNotFound
		}
		println(err.Error())
		return user, errors.New("unable to get user, DB error")
	}
	return user, nil
}

func (q *UserQueries) GetUserByID(id uuid.UUID) (models.User, error) {
	user := models.User{}

	query := `SELECT uid, name, phone, password_hash, user_role, city, created_at, updated_at
			  FROM users WHERE uid = $1`

	err := q.DB.QueryRow(query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.City,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return user, ErrNotFound
		}
		println(err.Error())
		return user, errors.New("unable to get user, DB error")
	}
	return user, nil
}

// AddFavorite is idempotent: favoriting an already-favorited listing is a no-op.
func (q *UserQueries) AddFavorite(userID, saleID uuid.UUID) error {
	query := `INSERT INTO favorites (user_id, sale_id, created_at) VALUES ($1, $2, now())
			  ON CONFLICT (user_id, sale_id) DO NOTHING`
	_, err := q.DB.Exec(query, userID, saleID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrNotFound
		}
		println(err.Error())
		return errors.New("unable to add favorite, DB error")
	}
	return nil
}

func (q *UserQueries) RemoveFavorite(userID, saleID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND sale_id = $2`
	_, err := q.DB.Exec(query, userID, saleID)
	if err != nil {
		println(err.Error())
		return errors.New("unable to remove favorite, DB error")
	}
	return nil
}

func (q *UserQueries) GetFavorites(userID uuid.UUID) ([]models.SaleListing, error) {
	listings := []models.SaleListing{}
	query := `SELECT s.id, s.seller_id, s.title, s.description, s.price, s.city, s.brand, s.model, s.year,
					 s.mileage, s.fuel, s.gearbox, s.images, s.status, s.created_at, s.updated_at
			  FROM favorites f
			  JOIN sale_listings s ON s.id = f.sale_id
			  WHERE f.user_id = $1
			  ORDER BY f.created_at DESC`

	rows, err := q.DB.Query(query, userID)
	if err != nil {
		println(err.Error())
		return listings, errors.New("unable to query favorites")
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
