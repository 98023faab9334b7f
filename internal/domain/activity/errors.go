package activity

import "github.com/ganot/committee/internal/apperror"

// ErrInvalidInput indicates a missing entry or meeting.
var ErrInvalidInput = apperror.Validation(apperror.FieldError{Field: "meeting_id", Message: "meeting is required"})
