package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/user"
	"github.com/ganot/committee/internal/repository"
	"github.com/google/uuid"
)

// MakeMotion places a motion before the meeting. callerID must chair it.
// Incidental motions are accepted immediately; every other motion is pushed
// onto the pending stack and becomes the floor motion.
func (s *Service) MakeMotion(ctx context.Context, callerID string, req MakeMotionRequest) (*motion.Motion, error) {
	if err := validateMakeMotion(req); err != nil {
		return nil, err
	}

	var made *motion.Motion
	_, err := s.mutate(ctx, callerID, req.MeetingID, func(ctx context.Context, repos Repositories, m *Meeting, t *transition) error {
		if m.Adjourned() {
			return ErrAdjourned
		}
		if m.ActiveVote != nil {
			return ErrVoteInProgress
		}
		if m.ChairID != callerID {
			return ErrNotChair
		}

		mt, err := repos.Catalog().GetType(ctx, req.MotionTypeID)
		if err != nil {
			return notFound(err, catalog.ErrMotionTypeNotFound, "getting motion type")
		}
		set, err := repos.Catalog().GetSet(ctx, m.MotionSetID)
		if err != nil {
			return notFound(err, catalog.ErrMotionSetNotFound, "getting motion set")
		}
		if !set.Contains(mt.ID) {
			return ErrMotionNotInSet
		}

		floor := m.FloorMotion()
		if err := checkEffects(*mt, req.EffectsID, floor); err != nil {
			return err
		}
		if err := s.checkParticipants(ctx, repos, *mt, req); err != nil {
			return err
		}
		if floor != nil && !motion.Admissible(*mt, floor.Type) {
			return ErrOutOfOrder
		}

		now := s.now()
		mo := &motion.Motion{
			ID:           uuid.NewString(),
			MeetingID:    m.ID,
			MotionTypeID: mt.ID,
			Type:         *mt,
			OwnerID:      req.OwnerID,
			SecondedByID: req.SecondedByID,
			EffectsID:    req.EffectsID,
			Status:       motion.StatusPending,
			DisplayName:  strings.TrimSpace(req.DisplayName),
			MadeAt:       now,
		}
		if mo.DisplayName == "" {
			mo.DisplayName = mt.Name
		}
		if mt.Class == catalog.ClassIncidental {
			if err := mo.Resolve(motion.StatusAccepted, now); err != nil {
				return err
			}
		}
		if err := repos.Motions().Create(ctx, mo); err != nil {
			return apperror.Persistence("creating motion", err)
		}

		if mo.Status == motion.StatusAccepted {
			m.MotionHistory = append(m.MotionHistory, *mo)
		} else {
			m.PendingMotions = append(m.PendingMotions, *mo)
		}

		t.record(activity.TypeMotionMade, &mo.ID, fmt.Sprintf("%s made by %s", mo.DisplayName, mo.OwnerID))
		t.observe(func(o Observer) { o.MotionMade(mt.Class) })
		if mo.Status == motion.StatusAccepted {
			t.record(activity.TypeMotionResolved, &mo.ID, fmt.Sprintf("%s accepted", mo.DisplayName))
			t.observe(func(o Observer) { o.MotionResolved(motion.StatusAccepted) })
		}
		made = mo
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("motion made", "meeting_id", req.MeetingID, "motion_id", made.ID, "type", made.Type.Name, "status", made.Status)
	}
	return made, nil
}

// checkEffects enforces that only subsidiary motions target another motion
// and that the target is the floor motion.
func checkEffects(mt catalog.MotionType, effectsID *string, floor *motion.Motion) error {
	if mt.Class != catalog.ClassSubsidiary {
		if effectsID != nil {
			return ErrEffectsNotAllowed
		}
		return nil
	}
	if effectsID == nil {
		return ErrEffectsRequired
	}
	if floor == nil || floor.ID != *effectsID {
		return ErrEffectsNotFloor
	}
	if mt.IsAmendment() && (!floor.Type.Amendable || floor.Status != motion.StatusPending) {
		return ErrNotAmendable
	}
	return nil
}

func (s *Service) checkParticipants(ctx context.Context, repos Repositories, mt catalog.MotionType, req MakeMotionRequest) error {
	if mt.RequiresSecond && req.SecondedByID == nil {
		return ErrSecondRequired
	}
	if req.SecondedByID != nil {
		if _, err := repos.Users().Get(ctx, *req.SecondedByID); err != nil {
			return notFound(err, ErrSeconderNotFound, "getting seconder")
		}
	}
	if _, err := repos.Users().Get(ctx, req.OwnerID); err != nil {
		return notFound(err, user.ErrUserNotFound, "getting motion owner")
	}
	return nil
}

// WithdrawMotion lets the owner withdraw the floor motion while it is
// pending and not under a vote, seconded or not.
func (s *Service) WithdrawMotion(ctx context.Context, callerID, motionID string) (*motion.Motion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	mo, err := s.store.Motions().Get(ctx, motionID)
	if err != nil {
		return nil, notFound(err, motion.ErrMotionNotFound, "getting motion")
	}

	var withdrawn motion.Motion
	_, err = s.mutate(ctx, callerID, mo.MeetingID, func(ctx context.Context, repos Repositories, m *Meeting, t *transition) error {
		floor := m.FloorMotion()
		if floor == nil || floor.ID != motionID {
			if current := findMotion(m, motionID); current != nil && current.Status != motion.StatusPending {
				return ErrMotionNotPending
			}
			return ErrNotFloorMotion
		}
		if floor.OwnerID != callerID {
			return ErrNotMotionOwner
		}
		if m.Adjourned() {
			return ErrAdjourned
		}
		if m.ActiveVote != nil {
			return ErrVoteInProgress
		}
		if err := floor.Resolve(motion.StatusWithdrawn, s.now()); err != nil {
			return err
		}
		if err := repos.Motions().Update(ctx, floor); err != nil {
			return apperror.Persistence("withdrawing motion", err)
		}
		withdrawn = m.popFloor()

		t.record(activity.TypeMotionWithdrawn, &withdrawn.ID, fmt.Sprintf("%s withdrawn", withdrawn.DisplayName))
		t.observe(func(o Observer) { o.MotionResolved(motion.StatusWithdrawn) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &withdrawn, nil
}

// GetMotion returns a motion whose meeting callerID belongs to.
func (s *Service) GetMotion(ctx context.Context, callerID, motionID string) (*motion.Motion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	mo, err := s.store.Motions().Get(ctx, motionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, motion.ErrMotionNotFound
		}
		return nil, apperror.Persistence("getting motion", err)
	}
	m, err := s.load(ctx, s.store, mo.MeetingID)
	if err != nil {
		return nil, err
	}
	if !m.IsMember(callerID) {
		return nil, ErrNotMember
	}
	return mo, nil
}

func findMotion(m *Meeting, id string) *motion.Motion {
	for _, list := range [][]motion.Motion{m.PendingMotions, m.MotionHistory} {
		for i := range list {
			if list[i].ID == id {
				return &list[i]
			}
		}
	}
	return nil
}
