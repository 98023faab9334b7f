package transport_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/meeting"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/roster"
	"github.com/ganot/committee/internal/domain/user"
	"github.com/ganot/committee/internal/domain/voting"
	"github.com/ganot/committee/internal/testserver"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type board struct {
	ts      *testserver.TestServer
	chair   testserver.Member
	members map[string]testserver.Member
	types   map[string]catalog.MotionType
	meeting meeting.Meeting
}

// newBoard registers a chair and members, seeds the default motion set and
// starts a meeting over HTTP.
func newBoard(t *testing.T, names ...string) *board {
	t.Helper()
	ts := testserver.New(t)
	b := &board{
		ts:      ts,
		chair:   ts.Register(t, "chair"),
		members: map[string]testserver.Member{},
		types:   map[string]catalog.MotionType{},
	}

	var ids []string
	for _, name := range names {
		m := ts.Register(t, name)
		b.members[name] = m
		ids = append(ids, m.ID)
	}

	var seeded struct {
		MotionSet   catalog.MotionSet    `json:"motion_set"`
		MotionTypes []catalog.MotionType `json:"motion_types"`
	}
	require.Equal(t, http.StatusCreated, ts.Do(t, http.MethodPost, "/motionSet/createDefault", b.chair.Token, nil, &seeded))
	for _, mt := range seeded.MotionTypes {
		b.types[mt.Name] = mt
	}

	var r roster.Roster
	require.Equal(t, http.StatusCreated, ts.Do(t, http.MethodPost, "/roster", b.chair.Token,
		roster.CreateRequest{Name: "Board", MemberIDs: ids, Quorum: 2}, &r))

	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPost, "/meeting/start", b.chair.Token,
		meeting.StartRequest{Name: "Monthly", RosterID: r.ID, MotionSetID: seeded.MotionSet.ID}, &b.meeting))
	return b
}

func (b *board) path(suffix string) string {
	return "/meeting/" + b.meeting.ID + suffix
}

func TestFlow_MotionVotedThrough(t *testing.T) {
	b := newBoard(t, "alice", "bob", "carol")
	ts := b.ts

	for _, name := range []string{"alice", "bob", "carol"} {
		require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPatch, b.path("/participant/join"), b.members[name].Token, nil, nil))
	}

	seconder := b.members["bob"].ID
	var made motion.Motion
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPost, "/motion", b.chair.Token, meeting.MakeMotionRequest{
		MeetingID:    b.meeting.ID,
		MotionTypeID: b.types["Main Motion"].ID,
		OwnerID:      b.members["alice"].ID,
		SecondedByID: &seconder,
		DisplayName:  "Buy a new projector",
	}, &made))
	require.Equal(t, motion.StatusPending, made.Status)

	var rec voting.Record
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPost, "/voting/begin", b.chair.Token,
		map[string]any{"meeting_id": b.meeting.ID, "motion_id": made.ID}, &rec))
	require.Len(t, rec.Votes, 3)

	for name, state := range map[string]string{"alice": "yes", "bob": "yes", "carol": "no"} {
		require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPatch, "/voting/vote", b.members[name].Token,
			map[string]string{"meeting_id": b.meeting.ID, "vote_state": state}, nil))
	}

	var ended meeting.Meeting
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPost, "/voting/end", b.chair.Token,
		map[string]string{"meeting_id": b.meeting.ID}, &ended))
	require.Nil(t, ended.ActiveVote)
	require.Empty(t, ended.PendingMotions)
	require.Len(t, ended.MotionHistory, 1)

	var got motion.Motion
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, "/motion/"+made.ID, b.members["carol"].Token, nil, &got))
	require.Equal(t, motion.StatusAccepted, got.Status)
	require.Equal(t, "Buy a new projector", got.DisplayName)

	var closed voting.Record
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, "/voting/"+rec.ID, b.members["alice"].Token, nil, &closed))
	require.Equal(t, voting.OutcomeAccepted, *closed.Outcome)
	require.Equal(t, voting.Tally{Yes: 2, No: 1, Total: 3}, *closed.Tally)

	var adjourned meeting.Meeting
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPatch, b.path("/chair/adjourn"), b.chair.Token, nil, &adjourned))
	require.Equal(t, meeting.StatusAdjourned, adjourned.Status)
	require.Equal(t, http.StatusBadRequest, ts.Do(t, http.MethodPatch, b.path("/chair/adjourn"), b.chair.Token, nil, nil))

	var entries []activity.ActivityEntry
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, b.path("/activity?limit=2"), b.members["bob"].Token, nil, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeMeetingAdjourned, entries[0].ActivityType)

	resp, err := http.Get(ts.Server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "committee_ballots_cast_total 3")
	require.Contains(t, string(body), `committee_votes_closed_total{outcome="accepted"} 1`)
}

func TestFlow_ErrorStatuses(t *testing.T) {
	b := newBoard(t, "alice")
	ts := b.ts
	outsider := ts.Register(t, "outsider")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"no token", http.MethodGet, b.path(""), "", nil, http.StatusUnauthorized},
		{"bad token", http.MethodGet, b.path(""), "forged", nil, http.StatusUnauthorized},
		{"outsider reads meeting", http.MethodGet, b.path(""), outsider.Token, nil, http.StatusForbidden},
		{"unknown meeting", http.MethodGet, "/meeting/missing", b.chair.Token, nil, http.StatusNotFound},
		{"member adjourns", http.MethodPatch, b.path("/chair/adjourn"), b.members["alice"].Token, nil, http.StatusForbidden},
		{"outsider joins", http.MethodPatch, b.path("/participant/join"), outsider.Token, nil, http.StatusForbidden},
		{"start without fields", http.MethodPost, "/meeting/start", b.chair.Token, map[string]string{}, http.StatusBadRequest},
		{"vote without vote", http.MethodPost, "/voting/end", b.chair.Token, map[string]string{"meeting_id": b.meeting.ID}, http.StatusBadRequest},
		{"invalid ballot", http.MethodPatch, "/voting/vote", b.members["alice"].Token, map[string]string{"meeting_id": b.meeting.ID, "vote_state": "maybe"}, http.StatusBadRequest},
		{"unknown motion type", http.MethodPost, "/motion", b.chair.Token, map[string]string{"meeting_id": b.meeting.ID, "motion_type_id": "missing", "owner_id": b.members["alice"].ID}, http.StatusNotFound},
		{"duplicate email", http.MethodPost, "/user/register", "", user.RegisterRequest{Email: "ALICE@example.com", Password: "long enough", FirstName: "a", LastName: "b"}, http.StatusBadRequest},
		{"wrong password", http.MethodPost, "/user/login", "", map[string]string{"email": "alice@example.com", "password": "wrong password"}, http.StatusForbidden},
		{"unknown login", http.MethodPost, "/user/login", "", map[string]string{"email": "ghost@example.com", "password": "whatever"}, http.StatusNotFound},
		{"outsider deletes roster", http.MethodDelete, "/roster/" + b.meeting.RosterID, outsider.Token, nil, http.StatusForbidden},
		{"activity limit", http.MethodGet, b.path("/activity?limit=-1"), b.chair.Token, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ts.Do(t, tt.method, tt.path, tt.token, tt.body, nil))
		})
	}
}

func TestFlow_UserAndRosterManagement(t *testing.T) {
	b := newBoard(t, "alice")
	ts := b.ts
	dave := ts.Register(t, "dave")

	var me user.User
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, "/user", dave.Token, nil, &me))
	require.Equal(t, dave.ID, me.ID)
	require.Equal(t, "dave@example.com", me.Email)

	var byID user.User
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, "/user/"+dave.ID, b.chair.Token, nil, &byID))
	require.Equal(t, me, byID)
	var byEmail user.User
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, "/user/byEmail/DAVE@example.com", b.chair.Token, nil, &byEmail))
	require.Equal(t, dave.ID, byEmail.ID)
	var raw map[string]any
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, "/user/byEmail/"+dave.Email, b.chair.Token, nil, &raw))
	require.NotContains(t, raw, "password_hash")
	require.NotContains(t, raw, "PasswordHash")
	require.Equal(t, http.StatusNotFound, ts.Do(t, http.MethodGet, "/user/missing", b.chair.Token, nil, nil))
	require.Equal(t, http.StatusNotFound, ts.Do(t, http.MethodGet, "/user/byEmail/nobody@example.com", b.chair.Token, nil, nil))
	require.Equal(t, http.StatusUnauthorized, ts.Do(t, http.MethodGet, "/user/"+dave.ID, "", nil, nil))

	var r roster.Roster
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPatch, "/roster/"+b.meeting.RosterID+"/member/add", b.chair.Token,
		map[string]string{"email": dave.Email}, &r))
	require.Contains(t, r.MemberIDs, dave.ID)
	require.Equal(t, http.StatusBadRequest, ts.Do(t, http.MethodPatch, "/roster/"+b.meeting.RosterID+"/member/add", b.chair.Token,
		map[string]string{"email": dave.Email}, nil))
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPatch, "/roster/"+b.meeting.RosterID+"/member/remove", b.chair.Token,
		map[string]string{"email": dave.Email}, &r))
	require.NotContains(t, r.MemberIDs, dave.ID)

	var types []catalog.MotionType
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, "/motionType", b.chair.Token, nil, &types))
	require.Len(t, types, 5)
	require.Equal(t, http.StatusNotFound, ts.Do(t, http.MethodGet, "/motionType", dave.Token, nil, nil))

	var mine []meeting.Summary
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, "/meetingByMember", b.members["alice"].Token, nil, &mine))
	require.Len(t, mine, 1)
	require.Equal(t, b.meeting.ID, mine[0].ID)
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodGet, "/meetingByMember", dave.Token, nil, &mine))
	require.Empty(t, mine)
}

func TestFlow_ChairMarksAttendance(t *testing.T) {
	b := newBoard(t, "alice", "bob")
	ts := b.ts

	var m meeting.Meeting
	require.Equal(t, http.StatusOK, ts.Do(t, http.MethodPatch, b.path("/chair/attendance"), b.chair.Token,
		meeting.AttendanceRequest{MemberID: b.members["alice"].ID, Status: "present", Voting: true}, &m))
	require.Equal(t, []string{b.members["alice"].ID}, m.Voters())

	require.Equal(t, http.StatusBadRequest, ts.Do(t, http.MethodPatch, b.path("/chair/attendance"), b.chair.Token,
		meeting.AttendanceRequest{MemberID: b.members["bob"].ID, Status: "excused", Voting: true}, nil))
}

// bearerTransport adds a bearer token to every request.
type bearerTransport struct {
	token string
}

func (t bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

func TestFlow_MCPOverHTTP(t *testing.T) {
	b := newBoard(t, "alice")
	ctx := context.Background()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   b.ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: b.members["alice"].Token}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "join_meeting",
		Arguments: map[string]any{"meeting_id": b.meeting.ID},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "adjourn_meeting",
		Arguments: map[string]any{"meeting_id": b.meeting.ID},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	var body struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &body))
	require.Equal(t, "authorization", body.Kind)

	var m meeting.Meeting
	require.Equal(t, http.StatusOK, b.ts.Do(t, http.MethodGet, b.path(""), b.chair.Token, nil, &m))
	require.Equal(t, meeting.AttendancePresent, m.Attendee(b.members["alice"].ID).Status)
}
