package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/roster"
	"github.com/ganot/committee/internal/domain/user"
	"github.com/ganot/committee/internal/domain/voting"
	"github.com/ganot/committee/internal/repository"
	"github.com/google/uuid"
)

// Service runs the meeting state machine. Every transition holds the
// meeting's lock and commits in one store transaction.
type Service struct {
	store      Store
	locks      *keyedLock
	timeout    time.Duration
	activities ActivityLogger
	observer   Observer
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new meeting service.
func NewService(store Store, opts Options, logger *slog.Logger) *Service {
	s := &Service{
		store:      store,
		locks:      newKeyedLock(),
		timeout:    opts.OperationTimeout,
		activities: opts.Activities,
		observer:   opts.Observer,
		logger:     logger,
		now:        time.Now,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultOperationTimeout
	}
	if s.observer == nil {
		s.observer = noopObserver{}
	}
	return s
}

// transition collects what a committed change reports afterwards.
type transition struct {
	meetingID string
	actorID   string
	entries   []activity.ActivityEntry
	notify    []func(Observer)
}

func (t *transition) record(typ activity.ActivityType, motionID *string, summary string) {
	t.entries = append(t.entries, activity.ActivityEntry{
		MeetingID:    t.meetingID,
		ActorID:      t.actorID,
		MotionID:     motionID,
		ActivityType: typ,
		Summary:      summary,
	})
}

func (t *transition) observe(fn func(Observer)) {
	t.notify = append(t.notify, fn)
}

// Start opens a meeting chaired by callerID with an absent, non-voting
// attendance record for every roster member.
func (s *Service) Start(ctx context.Context, callerID string, req StartRequest) (*Meeting, error) {
	var fields apperror.Fields
	fields.Require("name", req.Name, "name is required")
	fields.Require("roster_id", req.RosterID, "roster is required")
	fields.Require("motion_set_id", req.MotionSetID, "motion set is required")
	if err := fields.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var m *Meeting
	t := &transition{actorID: callerID}
	err := s.store.InTx(ctx, func(repos Repositories) error {
		r, err := repos.Rosters().Get(ctx, req.RosterID)
		if err != nil {
			return notFound(err, roster.ErrRosterNotFound, "getting roster")
		}
		if _, err := repos.Catalog().GetSet(ctx, req.MotionSetID); err != nil {
			return notFound(err, catalog.ErrMotionSetNotFound, "getting motion set")
		}
		if _, err := repos.Users().Get(ctx, callerID); err != nil {
			return notFound(err, user.ErrUserNotFound, "getting chair")
		}

		m = &Meeting{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(req.Name),
			RosterID:    r.ID,
			MotionSetID: req.MotionSetID,
			ChairID:     callerID,
			Quorum:      r.Quorum,
			Attendance:  snapshotAttendance(r.MemberIDs),
			Status:      StatusInProgress,
			StartTime:   s.now(),
		}
		if err := repos.Meetings().Create(ctx, m); err != nil {
			return apperror.Persistence("creating meeting", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.meetingID = m.ID
	t.record(activity.TypeMeetingStarted, nil, fmt.Sprintf("meeting %q started", m.Name))
	t.observe(func(o Observer) { o.MeetingStarted() })
	s.publish(ctx, t)

	if s.logger != nil {
		s.logger.Info("meeting started", "meeting_id", m.ID, "chair_id", callerID, "attendees", len(m.Attendance))
	}
	return m, nil
}

// Get returns a meeting visible to callerID.
func (s *Service) Get(ctx context.Context, callerID, id string) (*Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	m, err := s.load(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if !m.IsMember(callerID) {
		return nil, ErrNotMember
	}
	return m, nil
}

// ListForMember returns the meetings callerID chairs or attends.
func (s *Service) ListForMember(ctx context.Context, callerID string) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	list, err := s.store.Meetings().ListByMember(ctx, callerID)
	if err != nil {
		return nil, apperror.Persistence("listing meetings", err)
	}
	return list, nil
}

// Adjourn ends the meeting. Every pending motion is tabled in stack order
// and an active vote is closed as abandoned.
func (s *Service) Adjourn(ctx context.Context, callerID, id string) (*Meeting, error) {
	return s.mutate(ctx, callerID, id, func(ctx context.Context, repos Repositories, m *Meeting, t *transition) error {
		if m.ChairID != callerID {
			return ErrNotChair
		}
		if m.Adjourned() {
			return ErrAlreadyAdjourned
		}

		now := s.now()
		if m.ActiveVote != nil {
			if err := s.closeVote(ctx, repos, m, t, voting.OutcomeAbandoned, now); err != nil {
				return err
			}
		}

		for i := range m.PendingMotions {
			mo := &m.PendingMotions[i]
			if err := mo.Resolve(motion.StatusTabled, now); err != nil {
				return err
			}
			if err := repos.Motions().Update(ctx, mo); err != nil {
				return apperror.Persistence("tabling motion", err)
			}
			t.record(activity.TypeMotionResolved, &mo.ID, fmt.Sprintf("%s tabled", mo.DisplayName))
			t.observe(func(o Observer) { o.MotionResolved(motion.StatusTabled) })
		}
		m.MotionHistory = append(m.MotionHistory, m.PendingMotions...)
		m.PendingMotions = nil
		m.MotionQueue = nil
		m.Status = StatusAdjourned
		m.EndTime = &now

		t.record(activity.TypeMeetingAdjourned, nil, "meeting adjourned")
		t.observe(func(o Observer) { o.MeetingAdjourned() })
		return nil
	})
}

// Join marks callerID present and voting.
func (s *Service) Join(ctx context.Context, callerID, id string) (*Meeting, error) {
	return s.setOwnAttendance(ctx, callerID, id, AttendancePresent, true, activity.TypeMemberJoined, "joined")
}

// Leave marks callerID absent and non-voting.
func (s *Service) Leave(ctx context.Context, callerID, id string) (*Meeting, error) {
	return s.setOwnAttendance(ctx, callerID, id, AttendanceAbsent, false, activity.TypeMemberLeft, "left")
}

func (s *Service) setOwnAttendance(ctx context.Context, callerID, id string, status AttendanceStatus, votes bool, typ activity.ActivityType, verb string) (*Meeting, error) {
	return s.mutate(ctx, callerID, id, func(ctx context.Context, repos Repositories, m *Meeting, t *transition) error {
		a := m.Attendee(callerID)
		if a == nil {
			return ErrNotMember
		}
		if m.Adjourned() {
			return ErrAdjourned
		}
		a.Status = status
		a.Voting = votes
		t.record(typ, nil, fmt.Sprintf("member %s %s", callerID, verb))
		return nil
	})
}

// MarkAttendance lets the chair set a member's attendance. Only present
// members may vote.
func (s *Service) MarkAttendance(ctx context.Context, callerID, id string, req AttendanceRequest) (*Meeting, error) {
	var fields apperror.Fields
	fields.Require("member_id", req.MemberID, "member is required")
	if err := fields.Err(); err != nil {
		return nil, err
	}
	status, err := ParseAttendanceStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if req.Voting && status != AttendancePresent {
		return nil, ErrVotingNotAllowed
	}

	return s.mutate(ctx, callerID, id, func(ctx context.Context, repos Repositories, m *Meeting, t *transition) error {
		if m.ChairID != callerID {
			return ErrNotChair
		}
		if m.Adjourned() {
			return ErrAdjourned
		}
		a := m.Attendee(req.MemberID)
		if a == nil {
			return ErrNotAttendee
		}
		a.Status = status
		a.Voting = req.Voting
		t.record(activity.TypeAttendanceMarked, nil, fmt.Sprintf("member %s marked %s", req.MemberID, status))
		return nil
	})
}

type mutation func(ctx context.Context, repos Repositories, m *Meeting, t *transition) error

// mutate loads the meeting under its lock, applies fn and saves the result
// in one transaction guarded by the meeting version.
func (s *Service) mutate(ctx context.Context, callerID, id string, fn mutation) (*Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	release, err := s.locks.acquire(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBusy, err)
	}
	defer release()

	var out *Meeting
	t := &transition{meetingID: id, actorID: callerID}
	err = s.store.InTx(ctx, func(repos Repositories) error {
		m, err := s.load(ctx, repos, id)
		if err != nil {
			return err
		}
		version := m.Version
		if err := fn(ctx, repos, m, t); err != nil {
			return err
		}
		if err := repos.Meetings().Update(ctx, m, version); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrConcurrentUpdate
			}
			return apperror.Persistence("saving meeting", err)
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, t)
	return out, nil
}

func (s *Service) load(ctx context.Context, repos Repositories, id string) (*Meeting, error) {
	m, err := repos.Meetings().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMeetingNotFound, "getting meeting")
	}
	return m, nil
}

// publish reports a committed transition. Activity logging is best effort.
func (s *Service) publish(ctx context.Context, t *transition) {
	for _, fn := range t.notify {
		fn(s.observer)
	}
	if s.activities == nil || len(t.entries) == 0 {
		return
	}
	if _, err := s.activities.Record(ctx, t.entries...); err != nil && s.logger != nil {
		s.logger.Warn("failed to record activity", "meeting_id", t.meetingID, "entries", len(t.entries), "error", err)
	}
}

// notFound maps repository.ErrNotFound to domainErr and anything else to a
// persistence error.
func notFound(err, domainErr error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domainErr
	}
	return apperror.Persistence(action, err)
}
