package meeting

import (
	"strings"

	"github.com/ganot/committee/internal/apperror"
)

// AttendanceStatus is a member's presence at a meeting.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

// ParseAttendanceStatus accepts present, absent or excused in any case.
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch status := AttendanceStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return status, nil
	}
	return "", apperror.Validation(apperror.FieldError{Field: "status", Message: "must be one of present, absent, excused"})
}

// AttendanceRecord is one roster member's attendance at a meeting.
type AttendanceRecord struct {
	MemberID string           `json:"member_id"`
	Status   AttendanceStatus `json:"status"`
	Voting   bool             `json:"voting"`
}

// snapshotAttendance creates an absent, non-voting record per member.
func snapshotAttendance(memberIDs []string) []AttendanceRecord {
	records := make([]AttendanceRecord, 0, len(memberIDs))
	for _, id := range memberIDs {
		records = append(records, AttendanceRecord{MemberID: id, Status: AttendanceAbsent})
	}
	return records
}

// Attendee returns memberID's attendance record, or nil.
func (m *Meeting) Attendee(memberID string) *AttendanceRecord {
	for i := range m.Attendance {
		if m.Attendance[i].MemberID == memberID {
			return &m.Attendance[i]
		}
	}
	return nil
}

// PresentCount counts members marked present.
func (m *Meeting) PresentCount() int {
	n := 0
	for _, a := range m.Attendance {
		if a.Status == AttendancePresent {
			n++
		}
	}
	return n
}

// QuorumPresent reports whether enough members are present to do business.
// The quorum is reported, not enforced.
func (m *Meeting) QuorumPresent() bool {
	return m.PresentCount() >= m.Quorum
}

// Voters returns the members that are present and voting, in roster order.
func (m *Meeting) Voters() []string {
	var ids []string
	for _, a := range m.Attendance {
		if a.Status == AttendancePresent && a.Voting {
			ids = append(ids, a.MemberID)
		}
	}
	return ids
}
