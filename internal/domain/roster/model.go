package roster

import (
	"slices"
	"time"
)

// Roster is the list of members eligible to attend a meeting.
type Roster struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	MemberIDs []string  `json:"member_ids"`
	Quorum    int       `json:"quorum"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether userID is on the roster.
func (r Roster) HasMember(userID string) bool {
	return slices.Contains(r.MemberIDs, userID)
}

// CreateRequest contains the fields required to create a roster.
type CreateRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
	Quorum    int      `json:"quorum"`
}
