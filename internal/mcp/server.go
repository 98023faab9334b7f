package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/meeting"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/voting"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MeetingService defines meeting operations needed by MCP.
type MeetingService interface {
	Get(ctx context.Context, callerID, id string) (*meeting.Meeting, error)
	ListForMember(ctx context.Context, callerID string) ([]meeting.Summary, error)
	Adjourn(ctx context.Context, callerID, id string) (*meeting.Meeting, error)
	Join(ctx context.Context, callerID, id string) (*meeting.Meeting, error)
	Leave(ctx context.Context, callerID, id string) (*meeting.Meeting, error)
	MakeMotion(ctx context.Context, callerID string, req meeting.MakeMotionRequest) (*motion.Motion, error)
	WithdrawMotion(ctx context.Context, callerID, motionID string) (*motion.Motion, error)
	GetMotion(ctx context.Context, callerID, motionID string) (*motion.Motion, error)
	BeginVote(ctx context.Context, callerID, meetingID string, motionID *string) (*voting.Record, error)
	CastVote(ctx context.Context, callerID, meetingID, state string) (*meeting.Meeting, error)
	EndVote(ctx context.Context, callerID, meetingID string) (*meeting.Meeting, error)
	GetVotingRecord(ctx context.Context, callerID, id string) (*voting.Record, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Meetings MeetingService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      UserResolver
	TransportMode string // "stdio" or "http"
	// StdioUserID acts for every call in stdio mode.
	StdioUserID string
	Version     string
	Logger      *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "committee",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio has no headers, so it acts as the configured user.
	if cfg.TransportMode == "stdio" {
		server.AddReceivingMiddleware(fixedUserMiddleware(cfg.StdioUserID))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Logger)

	return server
}
