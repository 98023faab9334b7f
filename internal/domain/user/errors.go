package user

import "github.com/ganot/committee/internal/apperror"

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = apperror.NotFound("user not found")
	// ErrEmailTaken indicates another user registered the email first.
	ErrEmailTaken = apperror.Conflict("email already registered")
	// ErrInvalidCredentials indicates a password mismatch.
	ErrInvalidCredentials = apperror.Authorization("invalid credentials")
)
