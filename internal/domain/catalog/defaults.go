package catalog

// DefaultSetName is the name of the seeded motion set.
const DefaultSetName = "Default"

// DefaultMotionTypes returns the canonical rule templates, without IDs or owner.
func DefaultMotionTypes() []MotionType {
	return []MotionType{
		{
			Name:           "Main Motion",
			Description:    "Sets the main issue to be placed in front of the body.",
			Class:          ClassMain,
			Precedence:     1,
			RequiresSecond: true,
			Debatable:      DebatableYes,
			Amendable:      true,
			Threshold:      ThresholdMajority,
		},
		{
			Name:           AmendName,
			Description:    "Amends any amendable motion.",
			Class:          ClassSubsidiary,
			Precedence:     6,
			RequiresSecond: true,
			Debatable:      DebatableYes,
			Amendable:      true,
			Threshold:      ThresholdMajority,
		},
		{
			Name:           "Motion to Close Debate",
			Description:    "Ends debate on the current motion and begins voting procedure.",
			Class:          ClassSubsidiary,
			Precedence:     2,
			RequiresSecond: true,
			Debatable:      DebatableNo,
			Threshold:      ThresholdTwoThirds,
		},
		{
			Name:           "Motion to Limit Debate",
			Description:    "Limits or extends debate on a motion.",
			Class:          ClassSubsidiary,
			Precedence:     3,
			RequiresSecond: true,
			Debatable:      DebatableLimited,
			Threshold:      ThresholdTwoThirds,
		},
		{
			Name:        "Point of Parliamentary Inquiry",
			Description: "Request for clarification of parliamentary procedure.",
			Class:       ClassIncidental,
			Precedence:  0,
			Debatable:   DebatableNo,
			Interrupts:  true,
			Threshold:   ThresholdNotApplicable,
		},
	}
}
