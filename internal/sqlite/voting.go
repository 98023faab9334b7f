package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/committee/internal/domain/voting"
	"github.com/ganot/committee/internal/repository"
)

// VotingRecordRepository implements meeting.VotingRecordRepository for SQLite
type VotingRecordRepository struct {
	db querier
}

// NewVotingRecordRepository creates a new VotingRecordRepository
func NewVotingRecordRepository(db *DB) *VotingRecordRepository {
	return &VotingRecordRepository{db: db}
}

// Create inserts a voting record and its ballots
func (r *VotingRecordRepository) Create(ctx context.Context, rec *voting.Record) error {
	return withTx(ctx, r.db, func(q querier) error {
		_, err := q.ExecContext(ctx, `
			INSERT INTO voting_records (id, meeting_id, motion_id, voting_threshold, outcome, opened_at, closed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.MeetingID, rec.MotionID, rec.Threshold, rec.Outcome, rec.OpenedAt, rec.ClosedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to create voting record: %w", err)
		}
		return insertVotes(ctx, q, rec)
	})
}

// Get retrieves a voting record with its ballots
func (r *VotingRecordRepository) Get(ctx context.Context, id string) (*voting.Record, error) {
	var (
		rec      voting.Record
		outcome  sql.NullString
		closedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, meeting_id, motion_id, voting_threshold, outcome, opened_at, closed_at
		FROM voting_records
		WHERE id = ?`, id).Scan(
		&rec.ID,
		&rec.MeetingID,
		&rec.MotionID,
		&rec.Threshold,
		&outcome,
		&rec.OpenedAt,
		&closedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voting record: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT member_id, state FROM votes WHERE record_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	defer rows.Close()

	rec.Votes = []voting.Vote{}
	for rows.Next() {
		var v voting.Vote
		if err := rows.Scan(&v.MemberID, &v.State); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		rec.Votes = append(rec.Votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}

	if outcome.Valid {
		o := voting.Outcome(outcome.String)
		rec.Outcome = &o
	}
	rec.ClosedAt = nullTime(closedAt)
	if rec.ClosedAt != nil {
		tally := rec.Count()
		rec.Tally = &tally
	}
	return &rec, nil
}

// Update saves ballots, outcome and closing time
func (r *VotingRecordRepository) Update(ctx context.Context, rec *voting.Record) error {
	return withTx(ctx, r.db, func(q querier) error {
		result, err := q.ExecContext(ctx,
			`UPDATE voting_records SET outcome = ?, closed_at = ? WHERE id = ?`,
			rec.Outcome, rec.ClosedAt, rec.ID)
		if err != nil {
			return fmt.Errorf("failed to update voting record: %w", err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
		for _, v := range rec.Votes {
			if _, err := q.ExecContext(ctx,
				`UPDATE votes SET state = ? WHERE record_id = ? AND member_id = ?`,
				v.State, rec.ID, v.MemberID); err != nil {
				return fmt.Errorf("failed to update vote: %w", err)
			}
		}
		return nil
	})
}

func insertVotes(ctx context.Context, q querier, rec *voting.Record) error {
	for i, v := range rec.Votes {
		_, err := q.ExecContext(ctx,
			`INSERT INTO votes (record_id, member_id, state, position) VALUES (?, ?, ?, ?)`,
			rec.ID, v.MemberID, v.State, i)
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
	}
	return nil
}
