package roster

import "github.com/ganot/committee/internal/apperror"

var (
	// ErrRosterNotFound indicates the roster doesn't exist.
	ErrRosterNotFound = apperror.NotFound("roster not found")
	// ErrNotOwner indicates the caller does not own the roster.
	ErrNotOwner = apperror.Authorization("only the roster owner may do this")
	// ErrAlreadyMember indicates the user is already on the roster.
	ErrAlreadyMember = apperror.Conflict("user is already a roster member")
	// ErrNotMember indicates the user is not on the roster.
	ErrNotMember = apperror.Conflict("user is not a roster member")
)
