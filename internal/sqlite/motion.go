package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/repository"
)

const motionColumns = `
		m.id, m.meeting_id, m.motion_type_id, m.owner_id, m.seconded_by_id,
		m.effects_id, m.status, m.display_name, m.made_at, m.resolved_at,` + motionTypeColumns

const motionSelect = `
	SELECT` + motionColumns + `
	FROM motions m
	JOIN motion_types t ON t.id = m.motion_type_id`

// MotionRepository implements meeting.MotionRepository for SQLite
type MotionRepository struct {
	db querier
}

// NewMotionRepository creates a new MotionRepository
func NewMotionRepository(db *DB) *MotionRepository {
	return &MotionRepository{db: db}
}

// Create inserts a motion
func (r *MotionRepository) Create(ctx context.Context, mo *motion.Motion) error {
	query := `
		INSERT INTO motions (
			id, meeting_id, motion_type_id, owner_id, seconded_by_id,
			effects_id, status, display_name, made_at, resolved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		mo.ID,
		mo.MeetingID,
		mo.MotionTypeID,
		mo.OwnerID,
		mo.SecondedByID,
		mo.EffectsID,
		mo.Status,
		mo.DisplayName,
		mo.MadeAt,
		mo.ResolvedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create motion: %w", err)
	}
	return nil
}

// Get retrieves a motion with its motion type
func (r *MotionRepository) Get(ctx context.Context, id string) (*motion.Motion, error) {
	mo, err := scanMotion(r.db.QueryRowContext(ctx, motionSelect+` WHERE m.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get motion: %w", err)
	}
	return mo, nil
}

// Update saves a motion's status and resolution time
func (r *MotionRepository) Update(ctx context.Context, mo *motion.Motion) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE motions SET status = ?, display_name = ?, resolved_at = ? WHERE id = ?`,
		mo.Status, mo.DisplayName, mo.ResolvedAt, mo.ID)
	if err != nil {
		return fmt.Errorf("failed to update motion: %w", err)
	}
	return requireRow(result)
}

func scanMotion(s scanner, extra ...any) (*motion.Motion, error) {
	var (
		mo         motion.Motion
		secondedBy sql.NullString
		effects    sql.NullString
		resolvedAt sql.NullTime
	)
	dest := []any{
		&mo.ID,
		&mo.MeetingID,
		&mo.MotionTypeID,
		&mo.OwnerID,
		&secondedBy,
		&effects,
		&mo.Status,
		&mo.DisplayName,
		&mo.MadeAt,
		&resolvedAt,
	}
	dest = append(dest, motionTypeDest(&mo.Type)...)
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if secondedBy.Valid {
		mo.SecondedByID = &secondedBy.String
	}
	if effects.Valid {
		mo.EffectsID = &effects.String
	}
	mo.ResolvedAt = nullTime(resolvedAt)
	return &mo, nil
}
