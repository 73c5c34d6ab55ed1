package store

import "errors"

var (
	// ErrDuplicateEmail is returned when a user with the same email exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotFound is returned when no record matches. Owner-scoped session
	// lookups return it for both missing ids and ids owned by someone else.
	ErrNotFound = errors.New("not found")
)
