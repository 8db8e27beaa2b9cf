package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"uid"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	City         string    `json:"city,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Register struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required,min=5,max=20"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
	City     string `json:"city"`
}

type Login struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SellerProfile is the public view of a seller, joined with their
// approved sale listings.
type SellerProfile struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Phone    string        `json:"phone"`
	City     string        `json:"city,omitempty"`
	Role     string        `json:"role"`
	Listings []SaleListing `json:"listings"`
}
