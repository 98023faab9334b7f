package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/committee/internal/domain/roster"
	"github.com/ganot/committee/internal/repository"
)

// RosterRepository implements roster.Repository for SQLite
type RosterRepository struct {
	db querier
}

// NewRosterRepository creates a new RosterRepository
func NewRosterRepository(db *DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Create inserts a roster and its members
func (r *RosterRepository) Create(ctx context.Context, ros *roster.Roster) error {
	return withTx(ctx, r.db, func(q querier) error {
		_, err := q.ExecContext(ctx,
			`INSERT INTO rosters (id, name, owner_id, quorum, created_at) VALUES (?, ?, ?, ?, ?)`,
			ros.ID, ros.Name, ros.OwnerID, ros.Quorum, ros.CreatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to create roster: %w", err)
		}
		for i, memberID := range ros.MemberIDs {
			if err := insertRosterMember(ctx, q, ros.ID, memberID, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get retrieves a roster with its members in insertion order
func (r *RosterRepository) Get(ctx context.Context, id string) (*roster.Roster, error) {
	var ros roster.Roster
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, quorum, created_at FROM rosters WHERE id = ?`, id).Scan(
		&ros.ID,
		&ros.Name,
		&ros.OwnerID,
		&ros.Quorum,
		&ros.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM roster_members WHERE roster_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster members: %w", err)
	}
	defer rows.Close()

	ros.MemberIDs = []string{}
	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		ros.MemberIDs = append(ros.MemberIDs, memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster members: %w", err)
	}
	return &ros, nil
}

// Delete removes a roster and its member list
func (r *RosterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rosters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete roster: %w", err)
	}
	return requireRow(result)
}

// AddMember appends a user to the roster
func (r *RosterRepository) AddMember(ctx context.Context, rosterID, userID string) error {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM roster_members WHERE roster_id = ?`, rosterID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to read roster positions: %w", err)
	}
	return insertRosterMember(ctx, r.db, rosterID, userID, next)
}

// RemoveMember removes a user from the roster
func (r *RosterRepository) RemoveMember(ctx context.Context, rosterID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM roster_members WHERE roster_id = ? AND user_id = ?`, rosterID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove roster member: %w", err)
	}
	return requireRow(result)
}

func insertRosterMember(ctx context.Context, q querier, rosterID, userID string, position int) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO roster_members (roster_id, user_id, position) VALUES (?, ?, ?)`,
		rosterID, userID, position)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to add roster member: %w", err)
	}
	return nil
}

// requireRow maps an update or delete that touched nothing to ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
