package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ganot/committee/internal/auth"
	"github.com/ganot/committee/internal/config"
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API or the stdio tool server",
		RunE:  serveRun,
	}
}

// services is the wired application.
type services struct {
	users    *user.Service
	rosters  *roster.Service
	catalog  *catalog.Service
	activity *activity.Service
	meetings *meeting.Service
	tokens   *auth.Tokens
	metrics  *metrics.Observer
}

func serveRun(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	app, err := wire(db)
	if err != nil {
		return err
	}

	if cfg.Transport.Mode == config.TransportStdio {
		return runStdio(ctx, app)
	}
	return runHTTP(ctx, app)
}

func openDB(path string) (*sqlite.DB, error) {
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func wire(db *sqlite.DB) (*services, error) {
	secret := cfg.Auth.Secret
	if secret == "" {
		generated, err := randomSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
		logger.Warn("auth.secret not set, tokens will not survive a restart")
	}
	tokens, err := auth.NewTokens(secret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	app := &services{tokens: tokens}
	app.users = user.NewService(sqlite.NewUserRepository(db), logger)
	app.rosters = roster.NewService(sqlite.NewRosterRepository(db), app.users, logger)
	app.catalog = catalog.NewService(sqlite.NewCatalogRepository(db), logger)
	app.activity = activity.NewService(sqlite.NewActivityRepository(db), logger)

	opts := meeting.Options{
		OperationTimeout: cfg.Meeting.OperationTimeout,
		Activities:       app.activity,
	}
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		app.metrics = metrics.NewObserver(registry)
		opts.Observer = app.metrics
	}
	app.meetings = meeting.NewService(sqlite.NewMeetingStore(db), opts, logger)
	return app, nil
}

func (app *services) mcpServer(stdioUserID string) *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Meetings: app.meetings,
			Activity: app.activity,
		},
		Resolver:      app.tokens,
		TransportMode: cfg.Transport.Mode,
		StdioUserID:   stdioUserID,
		Version:       version,
		Logger:        logger,
	})
}

func runStdio(ctx context.Context, app *services) error {
	u, err := app.users.GetByEmail(ctx, cfg.MCP.User)
	if err != nil {
		return fmt.Errorf("resolve mcp.user %q: %w", cfg.MCP.User, err)
	}
	logger.Info("starting stdio transport", "user_id", u.ID)

	if err := app.mcpServer(u.ID).Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, app *services) error {
	opts := transport.Options{Logger: logger}
	if app.metrics != nil {
		opts.Metrics = app.metrics.Handler()
	}
	if cfg.MCP.Enabled {
		server := app.mcpServer("")
		opts.MCP = sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return server },
			&sdkmcp.StreamableHTTPOptions{Stateless: true},
		)
	}

	router := transport.NewServer(transport.Services{
		Users:    app.users,
		Tokens:   app.tokens,
		Rosters:  app.rosters,
		Catalog:  app.catalog,
		Meetings: app.meetings,
		Activity: app.activity,
	}, app.tokens, opts)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "mcp", cfg.MCP.Enabled, "metrics", cfg.Metrics.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

