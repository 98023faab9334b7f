package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/meeting"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/roster"
	"github.com/ganot/committee/internal/domain/user"
	"github.com/ganot/committee/internal/domain/voting"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// UserService defines account operations needed over HTTP.
type UserService interface {
	Register(ctx context.Context, req user.RegisterRequest) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// RosterService defines roster operations needed over HTTP.
type RosterService interface {
	Create(ctx context.Context, callerID string, req roster.CreateRequest) (*roster.Roster, error)
	Get(ctx context.Context, id string) (*roster.Roster, error)
	Delete(ctx context.Context, callerID, id string) error
	AddMemberByEmail(ctx context.Context, callerID, id, email string) (*roster.Roster, error)
	RemoveMemberByEmail(ctx context.Context, callerID, id, email string) (*roster.Roster, error)
}

// CatalogService defines motion catalog operations needed over HTTP.
type CatalogService interface {
	ListForOwner(ctx context.Context, ownerID string) ([]catalog.MotionType, error)
	CreateDefaultSet(ctx context.Context, ownerID string) (*catalog.MotionSet, []catalog.MotionType, error)
}

// MeetingService defines meeting operations needed over HTTP.
type MeetingService interface {
	Start(ctx context.Context, callerID string, req meeting.StartRequest) (*meeting.Meeting, error)
	Get(ctx context.Context, callerID, id string) (*meeting.Meeting, error)
	ListForMember(ctx context.Context, callerID string) ([]meeting.Summary, error)
	Adjourn(ctx context.Context, callerID, id string) (*meeting.Meeting, error)
	Join(ctx context.Context, callerID, id string) (*meeting.Meeting, error)
	Leave(ctx context.Context, callerID, id string) (*meeting.Meeting, error)
	MarkAttendance(ctx context.Context, callerID, id string, req meeting.AttendanceRequest) (*meeting.Meeting, error)
	MakeMotion(ctx context.Context, callerID string, req meeting.MakeMotionRequest) (*motion.Motion, error)
	WithdrawMotion(ctx context.Context, callerID, motionID string) (*motion.Motion, error)
	GetMotion(ctx context.Context, callerID, motionID string) (*motion.Motion, error)
	BeginVote(ctx context.Context, callerID, meetingID string, motionID *string) (*voting.Record, error)
	CastVote(ctx context.Context, callerID, meetingID, state string) (*meeting.Meeting, error)
	EndVote(ctx context.Context, callerID, meetingID string) (*meeting.Meeting, error)
	GetVotingRecord(ctx context.Context, callerID, id string) (*voting.Record, error)
}

// ActivityService defines activity operations needed over HTTP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services exposed over HTTP.
type Services struct {
	Users    UserService
	Tokens   TokenIssuer
	Rosters  RosterService
	Catalog  CatalogService
	Meetings MeetingService
	Activity ActivityService
}

// Options mounts optional handlers next to the API.
type Options struct {
	Logger  *slog.Logger
	Metrics http.Handler
	MCP     http.Handler
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer creates the HTTP router. Everything except registration, login,
// health and metrics requires a bearer token.
func NewServer(svc Services, resolver UserResolver, opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	srv := &Server{svc: svc, logger: opts.Logger}

	r.Get("/health", srv.handleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Post("/user/register", srv.handleRegister)
	r.Post("/user/login", srv.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(resolver))

		if opts.MCP != nil {
			r.Handle("/mcp", opts.MCP)
			r.Handle("/mcp/*", opts.MCP)
		}

		r.Get("/user", srv.handleCurrentUser)
		r.Get("/user/{id}", srv.handleGetUser)
		r.Get("/user/byEmail/{email}", srv.handleGetUserByEmail)

		r.Post("/roster", srv.handleCreateRoster)
		r.Get("/roster/{id}", srv.handleGetRoster)
		r.Delete("/roster/{id}", srv.handleDeleteRoster)
		r.Patch("/roster/{id}/member/add", srv.handleAddRosterMember)
		r.Patch("/roster/{id}/member/remove", srv.handleRemoveRosterMember)

		r.Get("/motionType", srv.handleListMotionTypes)
		r.Post("/motionSet/createDefault", srv.handleCreateDefaultSet)

		r.Post("/meeting/start", srv.handleStartMeeting)
		r.Get("/meetingByMember", srv.handleMeetingsByMember)
		r.Route("/meeting/{id}", func(r chi.Router) {
			r.Get("/", srv.handleGetMeeting)
			r.Get("/activity", srv.handleMeetingActivity)
			r.Patch("/chair/adjourn", srv.handleAdjourn)
			r.Patch("/chair/attendance", srv.handleMarkAttendance)
			r.Patch("/participant/join", srv.handleJoin)
			r.Patch("/participant/leave", srv.handleLeave)
		})

		r.Post("/motion", srv.handleMakeMotion)
		r.Get("/motion/{id}", srv.handleGetMotion)
		r.Patch("/motion/{id}/withdraw", srv.handleWithdrawMotion)

		r.Post("/voting/begin", srv.handleBeginVote)
		r.Post("/voting/end", srv.handleEndVote)
		r.Patch("/voting/vote", srv.handleCastVote)
		r.Get("/voting/{id}", srv.handleGetVotingRecord)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// caller returns the authenticated user. The auth middleware guarantees it
// on every protected route.
func caller(r *http.Request) string {
	userID, _ := UserFromContext(r.Context())
	return userID
}

// respond writes v with status, or the mapped error.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, status, v)
}
