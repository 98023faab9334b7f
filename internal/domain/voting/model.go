package voting

import (
	"strings"
	"time"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/catalog"
)

// VoteState is a member's ballot.
type VoteState string

const (
	StatePending VoteState = "pending"
	StateYes     VoteState = "yes"
	StateNo      VoteState = "no"
	StateAbstain VoteState = "abstain"
)

// ParseVoteState accepts yes, no or abstain in any case.
func ParseVoteState(s string) (VoteState, error) {
	switch state := VoteState(strings.ToLower(strings.TrimSpace(s))); state {
	case StateYes, StateNo, StateAbstain:
		return state, nil
	}
	return "", apperror.Validation(apperror.FieldError{Field: "vote_state", Message: "must be one of yes, no, abstain"})
}

// Outcome is the result of closing a vote.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeRejected  Outcome = "rejected"
	OutcomeUndecided Outcome = "undecided"
	OutcomeAbandoned Outcome = "abandoned"
)

// Vote is one member's ballot within a record.
type Vote struct {
	MemberID string    `json:"member_id"`
	State    VoteState `json:"state"`
}

// Record tracks the ballots on one motion.
type Record struct {
	ID        string            `json:"id"`
	MeetingID string            `json:"meeting_id"`
	MotionID  string            `json:"motion_id"`
	Threshold catalog.Threshold `json:"voting_threshold"`
	Votes     []Vote            `json:"votes"`
	Outcome   *Outcome          `json:"outcome,omitempty"`
	Tally     *Tally            `json:"tally,omitempty"`
	OpenedAt  time.Time         `json:"opened_at"`
	ClosedAt  *time.Time        `json:"closed_at,omitempty"`
}

// Tally counts the ballots of a record.
type Tally struct {
	Yes     int `json:"yes"`
	No      int `json:"no"`
	Abstain int `json:"abstain"`
	Pending int `json:"pending"`
	Total   int `json:"total"`
}

// NewRecord opens a record with a pending ballot for each member.
func NewRecord(id, meetingID, motionID string, threshold catalog.Threshold, memberIDs []string, openedAt time.Time) *Record {
	votes := make([]Vote, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		votes = append(votes, Vote{MemberID: memberID, State: StatePending})
	}
	return &Record{
		ID:        id,
		MeetingID: meetingID,
		MotionID:  motionID,
		Threshold: threshold,
		Votes:     votes,
		OpenedAt:  openedAt,
	}
}

// Open reports whether the record is still accepting ballots.
func (r *Record) Open() bool {
	return r.ClosedAt == nil
}

// Cast overwrites memberID's ballot.
func (r *Record) Cast(memberID string, state VoteState) error {
	if !r.Open() {
		return ErrVoteClosed
	}
	for i := range r.Votes {
		if r.Votes[i].MemberID == memberID {
			r.Votes[i].State = state
			return nil
		}
	}
	return ErrNotEligible
}

// Count tallies the current ballots.
func (r *Record) Count() Tally {
	t := Tally{Total: len(r.Votes)}
	for _, v := range r.Votes {
		switch v.State {
		case StateYes:
			t.Yes++
		case StateNo:
			t.No++
		case StateAbstain:
			t.Abstain++
		default:
			t.Pending++
		}
	}
	return t
}

// Close freezes the record with its tally and outcome.
func (r *Record) Close(outcome Outcome, at time.Time) {
	tally := r.Count()
	r.Tally = &tally
	r.Outcome = &outcome
	r.ClosedAt = &at
}

// Resolve applies the threshold to a tally. Every ballot, including
// abstentions and pending ones, counts toward the total.
func Resolve(t Tally, threshold catalog.Threshold) Outcome {
	var lhs, rhs int
	switch threshold {
	case catalog.ThresholdMajority:
		lhs, rhs = 2*t.Yes, t.Total
	case catalog.ThresholdTwoThirds:
		lhs, rhs = 3*t.Yes, 2*t.Total
	default:
		return OutcomeUndecided
	}
	switch {
	case lhs > rhs:
		return OutcomeAccepted
	case lhs < rhs:
		return OutcomeRejected
	}
	return OutcomeUndecided
}
