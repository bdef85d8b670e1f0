package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/visitdesk/internal/config"
	"github.com/rpggio/visitdesk/internal/directory"
	"github.com/rpggio/visitdesk/internal/domain/activity"
	"github.com/rpggio/visitdesk/internal/domain/live"
	"github.com/rpggio/visitdesk/internal/domain/session"
	"github.com/rpggio/visitdesk/internal/domain/visit"
	"github.com/rpggio/visitdesk/internal/logging"
	"github.com/rpggio/visitdesk/internal/mcp"
	"github.com/rpggio/visitdesk/internal/metrics"
	"github.com/rpggio/visitdesk/internal/schedule"
	"github.com/rpggio/visitdesk/internal/sqlite"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var (
		transport string
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Run the visitdesk MCP server.

Configuration comes from VISITDESK_CONFIG_PATH and VISITDESK_* environment
variables; flags override both.

Examples:
  visitdesk serve
  visitdesk serve --transport http
  VISITDESK_DB_PATH=./data/visitdesk.db visitdesk serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if transport != "" {
				cfg.Transport.Mode = transport
			}
			if dbPath != "" {
				cfg.DB.Path = dbPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
			logWriter := cmd.OutOrStdout()
			if cfg.Transport.Mode == config.TransportStdio {
				logWriter = cmd.ErrOrStderr()
			}

			a, err := newApp(cfg, logWriter)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Transport.Mode == config.TransportStdio {
				return a.runStdio(ctx)
			}
			return a.runHTTP(ctx, fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "Transport mode (stdio, http)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite path for the activity log")
	return cmd
}

// app holds the wired process components.
type app struct {
	logger     *slog.Logger
	db         *sqlite.DB
	controller *session.Controller
	metrics    *metrics.Metrics
	server     *sdkmcp.Server
	closers    []io.Closer
}

func newApp(cfg config.Config, logWriter io.Writer) (*app, error) {
	a := &app{}

	if cfg.Log.Path != "" {
		fw, err := logging.OpenFile(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, fw)
			logWriter = fw
		}
	}
	a.logger = logging.New(logWriter, cfg.Log.Level, cfg.Log.Format)

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, db)

	dir, err := directory.Load(cfg.Directory.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	script, err := live.LoadScript(cfg.Live.ScriptPath)
	if err != nil {
		a.Close()
		return nil, err
	}

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), a.logger)
	a.metrics = metrics.New()
	a.controller = session.NewController(session.Options{
		IDs:       visit.UUIDGenerator{},
		Directory: dir,
		Feed:      live.NewFeed(script, cfg.Live.TickInterval, nil, a.logger),
		Activity:  activitySvc,
		Metrics:   a.metrics,
		Logger:    a.logger,
	})

	a.server = mcp.NewServer(mcp.Config{
		Controller: a.controller,
		Directory:  dir,
		Activity:   activitySvc,
		Schedules:  schedule.NewParser(time.Now),
		Metrics:    a.metrics,
		Logger:     a.logger,
	})
	return a, nil
}

func (a *app) Close() error {
	if a.controller != nil {
		a.controller.Close()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *app) runStdio(ctx context.Context) error {
	a.logger.Info("starting stdio transport")

	// Run blocks until stdin closes or context is canceled
	if err := a.server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func (a *app) runHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           newHTTPHandler(a.server, a.metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newHTTPHandler routes /mcp to the streamable MCP handler next to the
// health and metrics endpoints.
func newHTTPHandler(server *sdkmcp.Server, m *metrics.Metrics) http.Handler {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/mcp", mcpHandler)
	r.Handle("/mcp/*", mcpHandler)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}

func ensureDBDir(path string) error {
	if path == "" || path == sqlite.MemoryDSN {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
