package meeting

import (
	"context"

	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/roster"
	"github.com/ganot/committee/internal/domain/user"
	"github.com/ganot/committee/internal/domain/voting"
)

// MeetingRepository persists meeting aggregates. Update fails with
// repository.ErrConflict when the stored version differs from expectedVersion.
type MeetingRepository interface {
	Create(ctx context.Context, m *Meeting) error
	Get(ctx context.Context, id string) (*Meeting, error)
	Update(ctx context.Context, m *Meeting, expectedVersion int64) error
	ListByMember(ctx context.Context, userID string) ([]Summary, error)
}

// MotionRepository persists motions.
type MotionRepository interface {
	Create(ctx context.Context, mo *motion.Motion) error
	Get(ctx context.Context, id string) (*motion.Motion, error)
	Update(ctx context.Context, mo *motion.Motion) error
}

// VotingRecordRepository persists voting records and their ballots.
type VotingRecordRepository interface {
	Create(ctx context.Context, rec *voting.Record) error
	Get(ctx context.Context, id string) (*voting.Record, error)
	Update(ctx context.Context, rec *voting.Record) error
}

// MotionTypeReader looks up motion rules.
type MotionTypeReader interface {
	GetType(ctx context.Context, id string) (*catalog.MotionType, error)
	GetSet(ctx context.Context, id string) (*catalog.MotionSet, error)
}

// RosterReader looks up rosters.
type RosterReader interface {
	Get(ctx context.Context, id string) (*roster.Roster, error)
}

// UserReader looks up users.
type UserReader interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

// Repositories groups the stores a transition reads and writes.
type Repositories interface {
	Meetings() MeetingRepository
	Motions() MotionRepository
	VotingRecords() VotingRecordRepository
	Catalog() MotionTypeReader
	Rosters() RosterReader
	Users() UserReader
}

// Store runs fn inside a single transaction. Repositories handed to fn are
// bound to that transaction; a non-nil error from fn rolls it back.
type Store interface {
	Repositories
	InTx(ctx context.Context, fn func(Repositories) error) error
}

// ActivityLogger records committed transitions.
type ActivityLogger interface {
	Record(ctx context.Context, entries ...activity.ActivityEntry) ([]activity.ActivityEntry, error)
}

// Observer is notified after a transition commits.
type Observer interface {
	MeetingStarted()
	MeetingAdjourned()
	MotionMade(class catalog.Class)
	MotionResolved(status motion.Status)
	BallotCast()
	VoteClosed(outcome voting.Outcome)
}
