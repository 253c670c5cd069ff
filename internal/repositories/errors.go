package repositories

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when registration hits the unique
	// constraint on users.email.
	ErrDuplicateEmail = errors.New("email already registered")
)
