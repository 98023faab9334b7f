package motion

import (
	"time"

	"github.com/ganot/committee/internal/domain/catalog"
)

// Status is the lifecycle state of a motion.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusTabled    Status = "tabled"
	StatusWithdrawn Status = "withdrawn"
)

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusTabled, StatusWithdrawn:
		return true
	}
	return false
}

// Motion is a proposal placed before a meeting.
type Motion struct {
	ID           string             `json:"id"`
	MeetingID    string             `json:"meeting_id"`
	MotionTypeID string             `json:"motion_type_id"`
	Type         catalog.MotionType `json:"motion_type"`
	OwnerID      string             `json:"owner_id"`
	SecondedByID *string            `json:"seconded_by_id,omitempty"`
	EffectsID    *string            `json:"effects_id,omitempty"`
	Status       Status             `json:"status"`
	DisplayName  string             `json:"display_name"`
	MadeAt       time.Time          `json:"made_at"`
	ResolvedAt   *time.Time         `json:"resolved_at,omitempty"`
}

// Resolve moves a pending motion into a terminal state.
func (m *Motion) Resolve(status Status, at time.Time) error {
	if !status.Terminal() {
		return ErrInvalidTransition
	}
	if m.Status != StatusPending {
		return ErrAlreadyResolved
	}
	m.Status = status
	m.ResolvedAt = &at
	return nil
}
