package meeting

import (
	"encoding/json"
	"time"

	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/voting"
)

// Status represents the meeting lifecycle.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusAdjourned  Status = "adjourned"
)

// Meeting is the aggregate every motion and vote transition mutates.
type Meeting struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	RosterID       string             `json:"roster_id"`
	MotionSetID    string             `json:"motion_set_id"`
	ChairID        string             `json:"chair_id"`
	Quorum         int                `json:"quorum"`
	Attendance     []AttendanceRecord `json:"attendance"`
	PendingMotions []motion.Motion    `json:"pending_motions"`
	MotionHistory  []motion.Motion    `json:"motion_history"`
	MotionQueue    []motion.Motion    `json:"motion_queue"`
	ActiveVote     *voting.Record     `json:"active_voting_record,omitempty"`
	Status         Status             `json:"status"`
	StartTime      time.Time          `json:"start_time"`
	EndTime        *time.Time         `json:"end_time,omitempty"`
	Version        int64              `json:"version"`
}

// MarshalJSON adds the derived quorum flag.
func (m Meeting) MarshalJSON() ([]byte, error) {
	type plain Meeting
	return json.Marshal(struct {
		plain
		QuorumPresent bool `json:"quorum_present"`
	}{plain(m), m.QuorumPresent()})
}

// Adjourned reports whether the meeting has ended.
func (m *Meeting) Adjourned() bool {
	return m.Status == StatusAdjourned
}

// FloorMotion returns the motion currently under consideration.
func (m *Meeting) FloorMotion() *motion.Motion {
	if len(m.PendingMotions) == 0 {
		return nil
	}
	return &m.PendingMotions[len(m.PendingMotions)-1]
}

// IsMember reports whether userID chairs the meeting or is on its attendance list.
func (m *Meeting) IsMember(userID string) bool {
	return m.ChairID == userID || m.Attendee(userID) != nil
}

// popFloor removes the floor motion and appends it to the history.
func (m *Meeting) popFloor() motion.Motion {
	floor := m.PendingMotions[len(m.PendingMotions)-1]
	m.PendingMotions = m.PendingMotions[:len(m.PendingMotions)-1]
	m.MotionHistory = append(m.MotionHistory, floor)
	return floor
}

// Summary is the listing view of a meeting.
type Summary struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ChairID   string     `json:"chair_id"`
	Status    Status     `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}
