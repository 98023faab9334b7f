package meeting

import "github.com/ganot/committee/internal/apperror"

func validateMakeMotion(req MakeMotionRequest) error {
	var fields apperror.Fields
	fields.Require("meeting_id", req.MeetingID, "meeting is required")
	fields.Require("motion_type_id", req.MotionTypeID, "motion type is required")
	fields.Require("owner_id", req.OwnerID, "owner is required")
	if req.SecondedByID != nil && *req.SecondedByID == "" {
		fields.Add("seconded_by_id", "seconder must not be empty")
	}
	if req.EffectsID != nil && *req.EffectsID == "" {
		fields.Add("effects_id", "effected motion must not be empty")
	}
	return fields.Err()
}
