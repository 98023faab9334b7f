// Package repository holds the errors every store returns. Domain services
// translate them into their own apperror sentinels.
package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrConflict means a meeting's version moved on since it was loaded.
	ErrConflict = errors.New("stale version: meeting was modified concurrently")

	// ErrDuplicate means a unique key such as a user's email is taken.
	ErrDuplicate = errors.New("duplicate entity")

	// ErrForeignKeyViolation means a referenced user, roster, set or motion
	// does not exist.
	ErrForeignKeyViolation = errors.New("referenced entity missing")
)
