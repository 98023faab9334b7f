package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/committee/internal/domain/meeting"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/repository"
)

const (
	listPending = "pending"
	listHistory = "history"
	listQueue   = "queue"
)

// MeetingRepository implements meeting.MeetingRepository for SQLite
type MeetingRepository struct {
	db querier
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create inserts a meeting with its attendance snapshot
func (r *MeetingRepository) Create(ctx context.Context, m *meeting.Meeting) error {
	return withTx(ctx, r.db, func(q querier) error {
		query := `
			INSERT INTO meetings (
				id, name, roster_id, motion_set_id, chair_id, quorum,
				status, start_time, end_time, active_vote_id, version
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := q.ExecContext(ctx, query,
			m.ID,
			m.Name,
			m.RosterID,
			m.MotionSetID,
			m.ChairID,
			m.Quorum,
			m.Status,
			m.StartTime,
			m.EndTime,
			activeVoteID(m),
			m.Version,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to create meeting: %w", err)
		}
		return writeMeetingChildren(ctx, q, m)
	})
}

// Get retrieves a meeting with attendance, motion lists and active vote
func (r *MeetingRepository) Get(ctx context.Context, id string) (*meeting.Meeting, error) {
	var (
		m            meeting.Meeting
		endTime      sql.NullTime
		activeVoteID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, roster_id, motion_set_id, chair_id, quorum,
			status, start_time, end_time, active_vote_id, version
		FROM meetings
		WHERE id = ?`, id).Scan(
		&m.ID,
		&m.Name,
		&m.RosterID,
		&m.MotionSetID,
		&m.ChairID,
		&m.Quorum,
		&m.Status,
		&m.StartTime,
		&endTime,
		&activeVoteID,
		&m.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	m.EndTime = nullTime(endTime)

	if m.Attendance, err = r.attendance(ctx, id); err != nil {
		return nil, err
	}
	if err := r.loadMotions(ctx, &m); err != nil {
		return nil, err
	}
	if activeVoteID.Valid {
		votes := &VotingRecordRepository{db: r.db}
		if m.ActiveVote, err = votes.Get(ctx, activeVoteID.String); err != nil {
			return nil, fmt.Errorf("failed to get active vote: %w", err)
		}
	}
	return &m, nil
}

// Update saves the meeting if its stored version still equals
// expectedVersion, then bumps the version.
func (r *MeetingRepository) Update(ctx context.Context, m *meeting.Meeting, expectedVersion int64) error {
	err := withTx(ctx, r.db, func(q querier) error {
		result, err := q.ExecContext(ctx, `
			UPDATE meetings
			SET name = ?, quorum = ?, status = ?, end_time = ?, active_vote_id = ?, version = version + 1
			WHERE id = ? AND version = ?`,
			m.Name,
			m.Quorum,
			m.Status,
			m.EndTime,
			activeVoteID(m),
			m.ID,
			expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update meeting: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			var exists int
			err := q.QueryRowContext(ctx, `SELECT 1 FROM meetings WHERE id = ?`, m.ID).Scan(&exists)
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to check meeting: %w", err)
			}
			return repository.ErrConflict
		}

		for _, stmt := range []string{
			`DELETE FROM meeting_attendance WHERE meeting_id = ?`,
			`DELETE FROM meeting_motions WHERE meeting_id = ?`,
		} {
			if _, err := q.ExecContext(ctx, stmt, m.ID); err != nil {
				return fmt.Errorf("failed to clear meeting children: %w", err)
			}
		}
		return writeMeetingChildren(ctx, q, m)
	})
	if err != nil {
		return err
	}
	m.Version = expectedVersion + 1
	return nil
}

// ListByMember lists meetings chaired or attended by userID, newest first
func (r *MeetingRepository) ListByMember(ctx context.Context, userID string) ([]meeting.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT m.id, m.name, m.chair_id, m.status, m.start_time, m.end_time
		FROM meetings m
		LEFT JOIN meeting_attendance a ON a.meeting_id = m.id
		WHERE m.chair_id = ? OR a.member_id = ?
		ORDER BY m.start_time DESC`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	list := []meeting.Summary{}
	for rows.Next() {
		var (
			s       meeting.Summary
			endTime sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.ChairID, &s.Status, &s.StartTime, &endTime); err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		s.EndTime = nullTime(endTime)
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meetings: %w", err)
	}
	return list, nil
}

func (r *MeetingRepository) attendance(ctx context.Context, meetingID string) ([]meeting.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT member_id, status, voting
		FROM meeting_attendance
		WHERE meeting_id = ?
		ORDER BY position`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	defer rows.Close()

	records := []meeting.AttendanceRecord{}
	for rows.Next() {
		var a meeting.AttendanceRecord
		if err := rows.Scan(&a.MemberID, &a.Status, &a.Voting); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}
	return records, nil
}

func (r *MeetingRepository) loadMotions(ctx context.Context, m *meeting.Meeting) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+motionColumns+`, mm.list
		FROM meeting_motions mm
		JOIN motions m ON m.id = mm.motion_id
		JOIN motion_types t ON t.id = m.motion_type_id
		WHERE mm.meeting_id = ?
		ORDER BY mm.list, mm.position`, m.ID)
	if err != nil {
		return fmt.Errorf("failed to get meeting motions: %w", err)
	}
	defer rows.Close()

	m.PendingMotions = []motion.Motion{}
	m.MotionHistory = []motion.Motion{}
	m.MotionQueue = []motion.Motion{}
	for rows.Next() {
		var list string
		mo, err := scanMotion(rows, &list)
		if err != nil {
			return fmt.Errorf("failed to scan meeting motion: %w", err)
		}
		switch list {
		case listPending:
			m.PendingMotions = append(m.PendingMotions, *mo)
		case listHistory:
			m.MotionHistory = append(m.MotionHistory, *mo)
		case listQueue:
			m.MotionQueue = append(m.MotionQueue, *mo)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating meeting motions: %w", err)
	}
	return nil
}

func writeMeetingChildren(ctx context.Context, q querier, m *meeting.Meeting) error {
	for i, a := range m.Attendance {
		_, err := q.ExecContext(ctx, `
			INSERT INTO meeting_attendance (meeting_id, member_id, status, voting, position)
			VALUES (?, ?, ?, ?, ?)`,
			m.ID, a.MemberID, a.Status, a.Voting, i)
		if err != nil {
			return fmt.Errorf("failed to write attendance: %w", err)
		}
	}

	lists := []struct {
		name    string
		motions []motion.Motion
	}{
		{listPending, m.PendingMotions},
		{listHistory, m.MotionHistory},
		{listQueue, m.MotionQueue},
	}
	for _, l := range lists {
		for i, mo := range l.motions {
			_, err := q.ExecContext(ctx, `
				INSERT INTO meeting_motions (meeting_id, motion_id, list, position)
				VALUES (?, ?, ?, ?)`,
				m.ID, mo.ID, l.name, i)
			if err != nil {
				if isForeignKeyViolation(err) {
					return repository.ErrForeignKeyViolation
				}
				return fmt.Errorf("failed to write meeting motion: %w", err)
			}
		}
	}
	return nil
}

func activeVoteID(m *meeting.Meeting) *string {
	if m.ActiveVote == nil {
		return nil
	}
	return &m.ActiveVote.ID
}
