package repository

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey indicates a unique-constraint violation. The
	// constraint is enforced by the database, so concurrent inserts of
	// the same username or email cannot both succeed.
	ErrDuplicateKey = errors.New("duplicate key")
)
