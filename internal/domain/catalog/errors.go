package catalog

import "github.com/ganot/committee/internal/apperror"

var (
	// ErrMotionTypeNotFound indicates the motion type doesn't exist.
	ErrMotionTypeNotFound = apperror.NotFound("motion type not found")
	// ErrMotionSetNotFound indicates the motion set doesn't exist.
	ErrMotionSetNotFound = apperror.NotFound("motion set not found")
	// ErrNoMotionTypes indicates the owner has not authored any motion types.
	ErrNoMotionTypes = apperror.NotFound("no motion types found for user")
)
