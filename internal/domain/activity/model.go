package activity

import "time"

// ActivityType represents the type of meeting event
type ActivityType string

const (
	TypeMeetingStarted   ActivityType = "meeting_started"
	TypeMeetingAdjourned ActivityType = "meeting_adjourned"
	TypeMemberJoined     ActivityType = "member_joined"
	TypeMemberLeft       ActivityType = "member_left"
	TypeAttendanceMarked ActivityType = "attendance_marked"
	TypeMotionMade       ActivityType = "motion_made"
	TypeMotionWithdrawn  ActivityType = "motion_withdrawn"
	TypeMotionResolved   ActivityType = "motion_resolved"
	TypeVoteBegun        ActivityType = "vote_begun"
	TypeVoteEnded        ActivityType = "vote_ended"
)

// ActivityEntry represents an event in a meeting's activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	MeetingID    string       `json:"meeting_id"`
	ActorID      string       `json:"actor_id"`
	MotionID     *string      `json:"motion_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
