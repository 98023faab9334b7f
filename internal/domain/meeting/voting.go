package meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/voting"
	"github.com/ganot/committee/internal/repository"
	"github.com/google/uuid"
)

// BeginVote opens a vote on the floor motion with a pending ballot for every
// member present and voting. When motionID is set it must name the floor motion.
func (s *Service) BeginVote(ctx context.Context, callerID, meetingID string, motionID *string) (*voting.Record, error) {
	var opened *voting.Record
	_, err := s.mutate(ctx, callerID, meetingID, func(ctx context.Context, repos Repositories, m *Meeting, t *transition) error {
		if m.ChairID != callerID {
			return ErrNotChair
		}
		if m.Adjourned() {
			return ErrAdjourned
		}
		if m.ActiveVote != nil {
			return ErrVoteInProgress
		}
		floor := m.FloorMotion()
		if floor == nil {
			return ErrNoFloorMotion
		}
		if motionID != nil && *motionID != floor.ID {
			return ErrNotFloorMotion
		}
		if floor.Status != motion.StatusPending {
			return ErrMotionNotPending
		}
		if !floor.Type.Votable() {
			return ErrNotVotable
		}

		rec := voting.NewRecord(uuid.NewString(), m.ID, floor.ID, floor.Type.Threshold, m.Voters(), s.now())
		if err := repos.VotingRecords().Create(ctx, rec); err != nil {
			return apperror.Persistence("creating voting record", err)
		}
		m.ActiveVote = rec

		t.record(activity.TypeVoteBegun, &floor.ID, fmt.Sprintf("vote begun on %s with %d ballots", floor.DisplayName, len(rec.Votes)))
		opened = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return opened, nil
}

// CastVote records callerID's ballot on the active vote. A member may change
// their ballot any number of times until the vote ends.
func (s *Service) CastVote(ctx context.Context, callerID, meetingID, state string) (*Meeting, error) {
	vs, err := voting.ParseVoteState(state)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, callerID, meetingID, func(ctx context.Context, repos Repositories, m *Meeting, t *transition) error {
		if m.ActiveVote == nil {
			return ErrNoActiveVote
		}
		if err := m.ActiveVote.Cast(callerID, vs); err != nil {
			return err
		}
		if err := repos.VotingRecords().Update(ctx, m.ActiveVote); err != nil {
			return apperror.Persistence("saving ballot", err)
		}
		t.observe(func(o Observer) { o.BallotCast() })
		return nil
	})
}

// EndVote closes the active vote and applies its outcome. Accepted and
// rejected motions move to the history; an undecided motion stays on the floor.
func (s *Service) EndVote(ctx context.Context, callerID, meetingID string) (*Meeting, error) {
	return s.mutate(ctx, callerID, meetingID, func(ctx context.Context, repos Repositories, m *Meeting, t *transition) error {
		if m.ChairID != callerID {
			return ErrNotChair
		}
		if m.ActiveVote == nil {
			return ErrNoActiveVote
		}

		outcome := voting.Resolve(m.ActiveVote.Count(), m.ActiveVote.Threshold)
		now := s.now()
		motionID := m.ActiveVote.MotionID
		if err := s.closeVote(ctx, repos, m, t, outcome, now); err != nil {
			return err
		}

		var status motion.Status
		switch outcome {
		case voting.OutcomeAccepted:
			status = motion.StatusAccepted
		case voting.OutcomeRejected:
			status = motion.StatusRejected
		default:
			return nil
		}

		floor := m.FloorMotion()
		if floor == nil || floor.ID != motionID {
			return ErrNotFloorMotion
		}
		if err := floor.Resolve(status, now); err != nil {
			return err
		}
		if err := repos.Motions().Update(ctx, floor); err != nil {
			return apperror.Persistence("resolving motion", err)
		}
		resolved := m.popFloor()

		t.record(activity.TypeMotionResolved, &resolved.ID, fmt.Sprintf("%s %s", resolved.DisplayName, status))
		t.observe(func(o Observer) { o.MotionResolved(status) })
		return nil
	})
}

// closeVote freezes the active record with outcome and detaches it.
func (s *Service) closeVote(ctx context.Context, repos Repositories, m *Meeting, t *transition, outcome voting.Outcome, at time.Time) error {
	rec := m.ActiveVote
	rec.Close(outcome, at)
	if err := repos.VotingRecords().Update(ctx, rec); err != nil {
		return apperror.Persistence("closing voting record", err)
	}
	m.ActiveVote = nil

	tally := *rec.Tally
	t.record(activity.TypeVoteEnded, &rec.MotionID,
		fmt.Sprintf("vote %s: %d yes, %d no, %d abstain, %d pending", outcome, tally.Yes, tally.No, tally.Abstain, tally.Pending))
	t.observe(func(o Observer) { o.VoteClosed(outcome) })

	if s.logger != nil {
		s.logger.Info("vote closed", "meeting_id", m.ID, "motion_id", rec.MotionID, "outcome", outcome, "total", tally.Total)
	}
	return nil
}

// GetVotingRecord returns a voting record whose meeting callerID belongs to.
func (s *Service) GetVotingRecord(ctx context.Context, callerID, id string) (*voting.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rec, err := s.store.VotingRecords().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, voting.ErrRecordNotFound
		}
		return nil, apperror.Persistence("getting voting record", err)
	}
	m, err := s.load(ctx, s.store, rec.MeetingID)
	if err != nil {
		return nil, err
	}
	if !m.IsMember(callerID) {
		return nil, ErrNotMember
	}
	return rec, nil
}
