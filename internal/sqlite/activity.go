package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ganot/committee/internal/domain/activity"
)

const insertActivity = `
	INSERT INTO activity_log (meeting_id, actor_id, motion_id, activity_type, summary, details, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

// ActivityRepository implements activity.Repository.
type ActivityRepository struct {
	db querier
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append inserts entries in one transaction and sets their IDs.
func (r *ActivityRepository) Append(ctx context.Context, entries []activity.ActivityEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]int64, len(entries))
	err := withTx(ctx, r.db, func(q querier) error {
		for i, e := range entries {
			res, err := q.ExecContext(ctx, insertActivity,
				e.MeetingID, e.ActorID, e.MotionID, e.ActivityType, e.Summary, e.Details, e.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert %s entry: %w", e.ActivityType, err)
			}
			if ids[i], err = res.LastInsertId(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for i := range entries {
		entries[i].ID = ids[i]
	}
	return nil
}

// List returns a meeting's entries newest first.
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	where := []string{"meeting_id = ?"}
	args := []any{opts.MeetingID}
	if opts.MotionID != nil {
		where = append(where, "motion_id = ?")
		args = append(args, *opts.MotionID)
	}
	if opts.ActivityType != nil {
		where = append(where, "activity_type = ?")
		args = append(args, *opts.ActivityType)
	}

	query := `SELECT id, meeting_id, actor_id, motion_id, activity_type, summary, details, created_at
		FROM activity_log WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id DESC`
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, max(opts.Offset, 0))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.ActivityEntry{}
	for rows.Next() {
		var (
			e        activity.ActivityEntry
			motionID sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.MeetingID, &e.ActorID, &motionID, &e.ActivityType, &e.Summary, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if motionID.Valid {
			e.MotionID = &motionID.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
