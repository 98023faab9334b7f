package catalog

import "time"

// Class is the parliamentary class of a motion type.
type Class string

const (
	ClassMain       Class = "main"
	ClassSubsidiary Class = "subsidiary"
	ClassPrivileged Class = "privileged"
	ClassIncidental Class = "incidental"
)

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	switch c {
	case ClassMain, ClassSubsidiary, ClassPrivileged, ClassIncidental:
		return true
	}
	return false
}

// Debatable describes whether a motion may be debated.
type Debatable string

const (
	DebatableYes     Debatable = "yes"
	DebatableNo      Debatable = "no"
	DebatableLimited Debatable = "limited"
)

// Threshold is the share of ballots a motion needs to pass.
type Threshold string

const (
	ThresholdMajority      Threshold = "majority"
	ThresholdTwoThirds     Threshold = "two-thirds"
	ThresholdNotApplicable Threshold = "n/a"
)

// AmendName is the name that marks a motion type as an amendment.
const AmendName = "Motion to Amend"

// MotionType is an immutable rule template owned by a rule-set author.
type MotionType struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Class          Class     `json:"class"`
	Precedence     int       `json:"precedence"`
	RequiresSecond bool      `json:"requires_second"`
	Debatable      Debatable `json:"debatable"`
	Amendable      bool      `json:"amendable"`
	Interrupts     bool      `json:"interrupts"`
	Threshold      Threshold `json:"voting_threshold"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsAmendment reports whether the type amends the motion it effects.
func (t MotionType) IsAmendment() bool {
	return t.Name == AmendName
}

// Votable reports whether motions of this type are decided by a vote.
func (t MotionType) Votable() bool {
	return t.Threshold == ThresholdMajority || t.Threshold == ThresholdTwoThirds
}

// MotionSet scopes which motion types a meeting may use.
type MotionSet struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	OwnerID       string    `json:"owner_id"`
	MotionTypeIDs []string  `json:"motion_type_ids"`
	CreatedAt     time.Time `json:"created_at"`
}

// Contains reports whether the set includes the motion type.
func (s MotionSet) Contains(motionTypeID string) bool {
	for _, id := range s.MotionTypeIDs {
		if id == motionTypeID {
			return true
		}
	}
	return false
}
