package voting

import "github.com/ganot/committee/internal/apperror"

var (
	// ErrRecordNotFound indicates the voting record doesn't exist.
	ErrRecordNotFound = apperror.NotFound("voting record not found")
	// ErrNotEligible indicates the member holds no ballot.
	ErrNotEligible = apperror.Conflict("not eligible to vote")
	// ErrVoteClosed indicates the record no longer accepts ballots.
	ErrVoteClosed = apperror.Conflict("vote is closed")
)
