package queries

import "errors"

// Sentinel errors the controllers translate into HTTP statuses.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("already booked for these dates")
	ErrBadTransition = errors.New("status transition not allowed")
)
