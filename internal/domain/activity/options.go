package activity

// ListActivityOptions filters a meeting's log. A zero Limit uses the
// service default.
type ListActivityOptions struct {
	MeetingID    string
	MotionID     *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
