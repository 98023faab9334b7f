// Package testserver runs the full HTTP stack on an in-memory database.
package testserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ganot/committee/internal/auth"
	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/meeting"
	"github.com/ganot/committee/internal/domain/roster"
	"github.com/ganot/committee/internal/domain/user"
	"github.com/ganot/committee/internal/mcp"
	"github.com/ganot/committee/internal/metrics"
	"github.com/ganot/committee/internal/sqlite"
	"github.com/ganot/committee/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Tokens  *auth.Tokens
	Metrics *metrics.Observer
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	tokens, err := auth.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)
	observer := metrics.NewObserver(nil)

	userSvc := user.NewService(sqlite.NewUserRepository(db), nil).WithHashCost(bcrypt.MinCost)
	rosterSvc := roster.NewService(sqlite.NewRosterRepository(db), userSvc, nil)
	catalogSvc := catalog.NewService(sqlite.NewCatalogRepository(db), nil)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	meetingSvc := meeting.NewService(sqlite.NewMeetingStore(db), meeting.Options{
		Activities: activitySvc,
		Observer:   observer,
	}, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services:      mcp.Services{Meetings: meetingSvc, Activity: activitySvc},
		Resolver:      tokens,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	router := transport.NewServer(transport.Services{
		Users:    userSvc,
		Tokens:   tokens,
		Rosters:  rosterSvc,
		Catalog:  catalogSvc,
		Meetings: meetingSvc,
		Activity: activitySvc,
	}, tokens, transport.Options{
		Metrics: observer.Handler(),
		MCP:     mcpHandler,
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Tokens: tokens, Metrics: observer}
}

// Do sends body as JSON with an optional bearer token and decodes a
// successful response into out. It returns the status code.
func (ts *TestServer) Do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// Member is a registered, logged-in user.
type Member struct {
	ID    string
	Email string
	Token string
}

// Register creates name@example.com and logs it in.
func (ts *TestServer) Register(t *testing.T, name string) Member {
	t.Helper()
	email := name + "@example.com"

	var u user.User
	status := ts.Do(t, http.MethodPost, "/user/register", "", user.RegisterRequest{
		Email:     email,
		Password:  "correct horse",
		FirstName: name,
		LastName:  "Tester",
	}, &u)
	require.Equal(t, http.StatusCreated, status)

	var login struct {
		Token string `json:"token"`
	}
	status = ts.Do(t, http.MethodPost, "/user/login", "", map[string]string{
		"email":    email,
		"password": "correct horse",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	return Member{ID: u.ID, Email: email, Token: login.Token}
}
