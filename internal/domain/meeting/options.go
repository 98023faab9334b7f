package meeting

import (
	"time"

	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/voting"
)

// DefaultOperationTimeout bounds every service call when Options leaves it unset.
const DefaultOperationTimeout = 5 * time.Second

// Options configures optional collaborators of the meeting service.
type Options struct {
	OperationTimeout time.Duration
	Activities       ActivityLogger
	Observer         Observer
}

// StartRequest describes a meeting start request.
type StartRequest struct {
	Name        string `json:"name"`
	RosterID    string `json:"roster_id"`
	MotionSetID string `json:"motion_set_id"`
}

// MakeMotionRequest describes a motion made from the chair.
type MakeMotionRequest struct {
	MeetingID    string  `json:"meeting_id"`
	MotionTypeID string  `json:"motion_type_id"`
	OwnerID      string  `json:"owner_id"`
	SecondedByID *string `json:"seconded_by_id,omitempty"`
	EffectsID    *string `json:"effects_id,omitempty"`
	DisplayName  string  `json:"display_name"`
}

// AttendanceRequest describes the chair marking a member's attendance.
type AttendanceRequest struct {
	MemberID string `json:"member_id"`
	Status   string `json:"status"`
	Voting   bool   `json:"voting"`
}

type noopObserver struct{}

func (noopObserver) MeetingStarted()              {}
func (noopObserver) MeetingAdjourned()            {}
func (noopObserver) MotionMade(catalog.Class)     {}
func (noopObserver) MotionResolved(motion.Status) {}
func (noopObserver) BallotCast()                  {}
func (noopObserver) VoteClosed(voting.Outcome)    {}
