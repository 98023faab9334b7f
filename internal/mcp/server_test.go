package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/meeting"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/voting"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// meetingStub records the acting user and delegates to optional funcs.
type meetingStub struct {
	callers  []string
	getFn    func(string) (*meeting.Meeting, error)
	motionFn func(meeting.MakeMotionRequest) (*motion.Motion, error)
	castFn   func(meetingID, state string) (*meeting.Meeting, error)
}

func (s *meetingStub) seen(callerID string) { s.callers = append(s.callers, callerID) }

func (s *meetingStub) Get(_ context.Context, callerID, id string) (*meeting.Meeting, error) {
	s.seen(callerID)
	return s.getFn(id)
}
func (s *meetingStub) ListForMember(_ context.Context, callerID string) ([]meeting.Summary, error) {
	s.seen(callerID)
	return nil, nil
}
func (s *meetingStub) Adjourn(_ context.Context, callerID, id string) (*meeting.Meeting, error) {
	s.seen(callerID)
	return nil, errors.New("unexpected call")
}
func (s *meetingStub) Join(_ context.Context, callerID, id string) (*meeting.Meeting, error) {
	s.seen(callerID)
	return nil, errors.New("unexpected call")
}
func (s *meetingStub) Leave(_ context.Context, callerID, id string) (*meeting.Meeting, error) {
	s.seen(callerID)
	return nil, errors.New("unexpected call")
}
func (s *meetingStub) MakeMotion(_ context.Context, callerID string, req meeting.MakeMotionRequest) (*motion.Motion, error) {
	s.seen(callerID)
	return s.motionFn(req)
}
func (s *meetingStub) WithdrawMotion(_ context.Context, callerID, motionID string) (*motion.Motion, error) {
	s.seen(callerID)
	return nil, errors.New("unexpected call")
}
func (s *meetingStub) GetMotion(_ context.Context, callerID, motionID string) (*motion.Motion, error) {
	s.seen(callerID)
	return nil, errors.New("unexpected call")
}
func (s *meetingStub) BeginVote(_ context.Context, callerID, meetingID string, motionID *string) (*voting.Record, error) {
	s.seen(callerID)
	return nil, errors.New("unexpected call")
}
func (s *meetingStub) CastVote(_ context.Context, callerID, meetingID, state string) (*meeting.Meeting, error) {
	s.seen(callerID)
	return s.castFn(meetingID, state)
}
func (s *meetingStub) EndVote(_ context.Context, callerID, meetingID string) (*meeting.Meeting, error) {
	s.seen(callerID)
	return nil, errors.New("unexpected call")
}
func (s *meetingStub) GetVotingRecord(_ context.Context, callerID, id string) (*voting.Record, error) {
	s.seen(callerID)
	return nil, errors.New("unexpected call")
}

type activityStub struct {
	opts activity.ListActivityOptions
}

func (s *activityStub) GetRecentActivity(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	s.opts = opts
	return []activity.ActivityEntry{{ID: 1, MeetingID: opts.MeetingID, ActivityType: activity.TypeMeetingStarted}}, nil
}

func connect(t *testing.T, cfg Config) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := NewServer(cfg).Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return session
}

func stdioConfig(meetings MeetingService, activities ActivityService) Config {
	return Config{
		Services:      Services{Meetings: meetings, Activity: activities},
		TransportMode: "stdio",
		StdioUserID:   "chair-1",
	}
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s", name)
	require.NotEmpty(t, res.Content)
	return res
}

func decode(t *testing.T, res *sdkmcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, res.IsError, "unexpected error result")
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(text.Text), v))
}

func TestServer_ListsTools(t *testing.T) {
	session := connect(t, stdioConfig(&meetingStub{}, &activityStub{}))

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	require.Equal(t, []string{
		"adjourn_meeting", "begin_vote", "cast_vote", "end_vote", "get_meeting",
		"get_motion", "get_recent_activity", "get_voting_record", "join_meeting",
		"leave_meeting", "list_meetings", "make_motion", "withdraw_motion",
	}, names)
}

func TestServer_GetMeetingActsAsStdioUser(t *testing.T) {
	stub := &meetingStub{getFn: func(id string) (*meeting.Meeting, error) {
		return &meeting.Meeting{ID: id, Name: "Board", ChairID: "chair-1", Status: meeting.StatusInProgress}, nil
	}}
	session := connect(t, stdioConfig(stub, nil))

	var got struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		QuorumPresent bool   `json:"quorum_present"`
	}
	decode(t, callTool(t, session, "get_meeting", map[string]any{"meeting_id": "m1"}), &got)
	require.Equal(t, "m1", got.ID)
	require.Equal(t, "Board", got.Name)
	require.True(t, got.QuorumPresent)
	require.Equal(t, []string{"chair-1"}, stub.callers)
}

func TestServer_MakeMotionPassesArguments(t *testing.T) {
	var captured meeting.MakeMotionRequest
	stub := &meetingStub{motionFn: func(req meeting.MakeMotionRequest) (*motion.Motion, error) {
		captured = req
		return &motion.Motion{ID: "mo1", MeetingID: req.MeetingID, Status: motion.StatusPending}, nil
	}}
	session := connect(t, stdioConfig(stub, nil))

	var got motion.Motion
	decode(t, callTool(t, session, "make_motion", map[string]any{
		"meeting_id":     "m1",
		"motion_type_id": "amend",
		"owner_id":       "u2",
		"seconded_by_id": "u3",
		"effects_id":     "mo0",
		"display_name":   "Strike paragraph two",
	}), &got)

	require.Equal(t, "mo1", got.ID)
	require.Equal(t, "m1", captured.MeetingID)
	require.Equal(t, "amend", captured.MotionTypeID)
	require.Equal(t, "u2", captured.OwnerID)
	require.Equal(t, "u3", *captured.SecondedByID)
	require.Equal(t, "mo0", *captured.EffectsID)
	require.Equal(t, "Strike paragraph two", captured.DisplayName)
}

func TestServer_DomainErrorsAreToolErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind apperror.Kind
		wantMsg  string
	}{
		{name: "not chair", err: meeting.ErrNotChair, wantKind: apperror.KindAuthorization, wantMsg: meeting.ErrNotChair.Error()},
		{name: "vote in progress", err: meeting.ErrVoteInProgress, wantKind: apperror.KindConflict, wantMsg: "vote in progress"},
		{name: "not found", err: meeting.ErrMeetingNotFound, wantKind: apperror.KindNotFound, wantMsg: meeting.ErrMeetingNotFound.Error()},
		{name: "persistence hidden", err: apperror.Persistence("saving meeting", errors.New("disk full")), wantKind: apperror.KindPersistence, wantMsg: "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &meetingStub{castFn: func(string, string) (*meeting.Meeting, error) { return nil, tt.err }}
			session := connect(t, stdioConfig(stub, nil))

			res := callTool(t, session, "cast_vote", map[string]any{"meeting_id": "m1", "vote_state": "yes"})
			require.True(t, res.IsError)
			apiErr, err := decodeError(res)
			require.NoError(t, err)
			require.Equal(t, tt.wantKind, apiErr.Kind)
			require.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestServer_RecentActivityChecksMembership(t *testing.T) {
	activities := &activityStub{}
	stub := &meetingStub{getFn: func(id string) (*meeting.Meeting, error) {
		if id == "secret" {
			return nil, meeting.ErrNotMember
		}
		return &meeting.Meeting{ID: id}, nil
	}}
	session := connect(t, stdioConfig(stub, activities))

	var entries []activity.ActivityEntry
	decode(t, callTool(t, session, "get_recent_activity", map[string]any{"meeting_id": "m1", "limit": 5}), &entries)
	require.Len(t, entries, 1)
	require.Equal(t, 5, activities.opts.Limit)

	res := callTool(t, session, "get_recent_activity", map[string]any{"meeting_id": "secret"})
	require.True(t, res.IsError)
}

func TestServer_HTTPModeRequiresBearerToken(t *testing.T) {
	stub := &meetingStub{getFn: func(id string) (*meeting.Meeting, error) { return &meeting.Meeting{ID: id}, nil }}
	session := connect(t, Config{
		Services:      Services{Meetings: stub},
		TransportMode: "http",
	})

	// In-memory transports carry no headers.
	_, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "get_meeting",
		Arguments: map[string]any{"meeting_id": "m1"},
	})
	require.ErrorContains(t, err, "unauthorized")
	require.Empty(t, stub.callers)
}

func TestServer_ReadsDocs(t *testing.T) {
	session := connect(t, stdioConfig(&meetingStub{}, nil))

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "committee://docs/motions"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "Motion to Close Debate")
}
