package sqlite

import (
	"context"
	"database/sql"

	"github.com/ganot/committee/internal/domain/meeting"
)

// MeetingStore implements meeting.Store. Repositories handed out by InTx
// share the transaction.
type MeetingStore struct {
	db *DB
	repositories
}

type repositories struct {
	q querier
}

func (r repositories) Meetings() meeting.MeetingRepository {
	return &MeetingRepository{db: r.q}
}

func (r repositories) Motions() meeting.MotionRepository {
	return &MotionRepository{db: r.q}
}

func (r repositories) VotingRecords() meeting.VotingRecordRepository {
	return &VotingRecordRepository{db: r.q}
}

func (r repositories) Catalog() meeting.MotionTypeReader {
	return &CatalogRepository{db: r.q}
}

func (r repositories) Rosters() meeting.RosterReader {
	return &RosterRepository{db: r.q}
}

func (r repositories) Users() meeting.UserReader {
	return &UserRepository{db: r.q}
}

// NewMeetingStore creates a new MeetingStore
func NewMeetingStore(db *DB) *MeetingStore {
	return &MeetingStore{db: db, repositories: repositories{q: db}}
}

// InTx runs fn with repositories bound to a single transaction.
func (s *MeetingStore) InTx(ctx context.Context, fn func(meeting.Repositories) error) error {
	return s.db.InTx(ctx, func(tx *sql.Tx) error {
		return fn(repositories{q: tx})
	})
}
