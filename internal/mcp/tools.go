package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/meeting"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type meetingInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"ID of the meeting"`
}

type motionInput struct {
	MotionID string `json:"motion_id" jsonschema:"ID of the motion"`
}

type makeMotionInput struct {
	MeetingID    string  `json:"meeting_id" jsonschema:"ID of the meeting"`
	MotionTypeID string  `json:"motion_type_id" jsonschema:"ID of a motion type in the meeting's motion set"`
	OwnerID      string  `json:"owner_id" jsonschema:"ID of the member making the motion"`
	SecondedByID *string `json:"seconded_by_id,omitempty" jsonschema:"ID of the seconding member, required when the type needs a second"`
	EffectsID    *string `json:"effects_id,omitempty" jsonschema:"ID of the floor motion a subsidiary motion applies to"`
	DisplayName  string  `json:"display_name,omitempty" jsonschema:"Text of the motion, defaults to the type name"`
}

type beginVoteInput struct {
	MeetingID string  `json:"meeting_id" jsonschema:"ID of the meeting"`
	MotionID  *string `json:"motion_id,omitempty" jsonschema:"Floor motion ID, checked when given"`
}

type castVoteInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"ID of the meeting"`
	VoteState string `json:"vote_state" jsonschema:"yes, no or abstain"`
}

type votingRecordInput struct {
	VotingRecordID string `json:"voting_record_id" jsonschema:"ID of the voting record"`
}

type activityInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"ID of the meeting"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of entries, newest first"`
}

type noInput struct{}

type toolFunc[In any] func(ctx context.Context, userID string, in In) (any, error)

// addTool registers a tool acting as the authenticated user. Domain errors
// become error results rather than protocol errors.
func addTool[In any](server *sdkmcp.Server, logger *slog.Logger, name, description string, fn toolFunc[In]) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			userID := getUserID(ctx)
			if userID == "" {
				return errorResult(logger, name, ErrUnauthenticated), nil, nil
			}
			out, err := fn(ctx, userID, in)
			if err != nil {
				return errorResult(logger, name, err), nil, nil
			}
			res, err := jsonResult(out)
			return res, nil, err
		})
}

func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	meetings := svc.Meetings

	addTool(server, logger, "list_meetings", "List meetings the acting user chairs or attends",
		func(ctx context.Context, userID string, _ noInput) (any, error) {
			list, err := meetings.ListForMember(ctx, userID)
			if list == nil {
				list = []meeting.Summary{}
			}
			return list, err
		})
	addTool(server, logger, "get_meeting", "Get a meeting with its attendance, pending motion stack, history and active vote",
		func(ctx context.Context, userID string, in meetingInput) (any, error) {
			return meetings.Get(ctx, userID, in.MeetingID)
		})
	addTool(server, logger, "join_meeting", "Mark the acting user present and voting",
		func(ctx context.Context, userID string, in meetingInput) (any, error) {
			return meetings.Join(ctx, userID, in.MeetingID)
		})
	addTool(server, logger, "leave_meeting", "Mark the acting user absent",
		func(ctx context.Context, userID string, in meetingInput) (any, error) {
			return meetings.Leave(ctx, userID, in.MeetingID)
		})
	addTool(server, logger, "adjourn_meeting", "Adjourn the meeting, tabling every pending motion (chair only)",
		func(ctx context.Context, userID string, in meetingInput) (any, error) {
			return meetings.Adjourn(ctx, userID, in.MeetingID)
		})
	addTool(server, logger, "make_motion", "Place a motion before the meeting (chair only). It must be in order against the floor motion",
		func(ctx context.Context, userID string, in makeMotionInput) (any, error) {
			return meetings.MakeMotion(ctx, userID, meeting.MakeMotionRequest{
				MeetingID:    in.MeetingID,
				MotionTypeID: in.MotionTypeID,
				OwnerID:      in.OwnerID,
				SecondedByID: in.SecondedByID,
				EffectsID:    in.EffectsID,
				DisplayName:  in.DisplayName,
			})
		})
	addTool(server, logger, "withdraw_motion", "Withdraw the floor motion (owner only, not during a vote)",
		func(ctx context.Context, userID string, in motionInput) (any, error) {
			return meetings.WithdrawMotion(ctx, userID, in.MotionID)
		})
	addTool(server, logger, "get_motion", "Get a motion with its rules",
		func(ctx context.Context, userID string, in motionInput) (any, error) {
			return meetings.GetMotion(ctx, userID, in.MotionID)
		})
	addTool(server, logger, "begin_vote", "Open a vote on the floor motion for every member present and voting (chair only)",
		func(ctx context.Context, userID string, in beginVoteInput) (any, error) {
			return meetings.BeginVote(ctx, userID, in.MeetingID, in.MotionID)
		})
	addTool(server, logger, "cast_vote", "Cast or change the acting user's ballot on the active vote",
		func(ctx context.Context, userID string, in castVoteInput) (any, error) {
			return meetings.CastVote(ctx, userID, in.MeetingID, in.VoteState)
		})
	addTool(server, logger, "end_vote", "Close the active vote and apply its outcome (chair only)",
		func(ctx context.Context, userID string, in meetingInput) (any, error) {
			return meetings.EndVote(ctx, userID, in.MeetingID)
		})
	addTool(server, logger, "get_voting_record", "Get a voting record with its ballots and, once closed, its tally",
		func(ctx context.Context, userID string, in votingRecordInput) (any, error) {
			return meetings.GetVotingRecord(ctx, userID, in.VotingRecordID)
		})

	if svc.Activity == nil {
		return
	}
	addTool(server, logger, "get_recent_activity", "List the meeting's activity log, newest first",
		func(ctx context.Context, userID string, in activityInput) (any, error) {
			if _, err := meetings.Get(ctx, userID, in.MeetingID); err != nil {
				return nil, err
			}
			entries, err := svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{
				MeetingID: in.MeetingID,
				Limit:     in.Limit,
			})
			if entries == nil {
				entries = []activity.ActivityEntry{}
			}
			return entries, err
		})
}
