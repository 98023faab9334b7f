package motion

import "github.com/ganot/committee/internal/apperror"

var (
	// ErrMotionNotFound indicates the motion doesn't exist.
	ErrMotionNotFound = apperror.NotFound("motion not found")
	// ErrAlreadyResolved indicates the motion already reached a final state.
	ErrAlreadyResolved = apperror.Conflict("motion is no longer pending")
	// ErrInvalidTransition indicates a non-final target state.
	ErrInvalidTransition = apperror.Conflict("invalid motion status transition")
)
