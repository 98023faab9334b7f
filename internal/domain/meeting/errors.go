package meeting

import (
	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/voting"
)

var (
	// ErrMeetingNotFound indicates the meeting doesn't exist.
	ErrMeetingNotFound = apperror.NotFound("meeting not found")
	// ErrAdjourned indicates the meeting no longer accepts changes.
	ErrAdjourned = apperror.Conflict("meeting adjourned")
	// ErrAlreadyAdjourned indicates a second adjournment.
	ErrAlreadyAdjourned = apperror.Conflict("meeting already adjourned")
	// ErrVoteInProgress indicates an active vote blocks the operation.
	ErrVoteInProgress = apperror.Conflict("vote in progress")
	// ErrNoActiveVote indicates the meeting has no active vote.
	ErrNoActiveVote = apperror.Conflict("no vote in progress")
	// ErrNotChair indicates the caller does not chair the meeting.
	ErrNotChair = apperror.Authorization("only the chair may do this")
	// ErrNotMember indicates the caller is neither chair nor on the roster.
	ErrNotMember = apperror.Authorization("not a member of this meeting")
	// ErrNotAttendee indicates the member is not on the attendance list.
	ErrNotAttendee = apperror.NotFound("member is not on the attendance list")
	// ErrNotMotionOwner indicates the caller did not make the motion.
	ErrNotMotionOwner = apperror.Authorization("only the motion owner may withdraw it")
	// ErrMotionNotInSet indicates the motion type is outside the meeting's motion set.
	ErrMotionNotInSet = apperror.Conflict("motion type not valid for this meeting")
	// ErrEffectsRequired indicates a subsidiary motion without a target.
	ErrEffectsRequired = apperror.Conflict("subsidiary motion must effect the motion on the floor")
	// ErrEffectsNotFloor indicates the target is not the floor motion.
	ErrEffectsNotFloor = apperror.Conflict("motion must effect the motion on the floor")
	// ErrEffectsNotAllowed indicates a non-subsidiary motion with a target.
	ErrEffectsNotAllowed = apperror.Conflict("only subsidiary motions may effect another motion")
	// ErrNotAmendable indicates the target cannot be amended.
	ErrNotAmendable = apperror.Conflict("motion is not amendable")
	// ErrSecondRequired indicates a motion type that needs a second was not seconded.
	ErrSecondRequired = apperror.Validation(apperror.FieldError{Field: "seconded_by_id", Message: "motion requires a second"})
	// ErrSeconderNotFound indicates the seconding user doesn't exist.
	ErrSeconderNotFound = apperror.NotFound("seconder not found")
	// ErrOutOfOrder indicates the motion does not outrank the floor motion.
	ErrOutOfOrder = apperror.Conflict("motion out of order")
	// ErrNoFloorMotion indicates nothing is pending.
	ErrNoFloorMotion = apperror.Conflict("no motion on the floor")
	// ErrNotFloorMotion indicates the motion is not the floor motion.
	ErrNotFloorMotion = apperror.Conflict("motion is not on the floor")
	// ErrMotionNotPending indicates the motion already resolved.
	ErrMotionNotPending = apperror.Conflict("motion is not pending")
	// ErrNotVotable indicates the motion type is not decided by vote.
	ErrNotVotable = apperror.Conflict("motion is not decided by vote")
	// ErrVotingNotAllowed indicates a voting flag on a member who is not present.
	ErrVotingNotAllowed = apperror.Validation(apperror.FieldError{Field: "voting", Message: "only present members may vote"})
	// ErrBusy indicates the meeting lock could not be acquired in time.
	ErrBusy = apperror.Conflict("meeting is busy, try again")
	// ErrConcurrentUpdate indicates the meeting changed under the transition.
	ErrConcurrentUpdate = apperror.Conflict("meeting was modified concurrently")

	// ErrNotEligible indicates the member holds no ballot.
	ErrNotEligible = voting.ErrNotEligible
)
