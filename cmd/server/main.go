package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/citymarble/internal/animation"
	"github.com/playperu/citymarble/internal/config"
	"github.com/playperu/citymarble/internal/content"
	"github.com/playperu/citymarble/internal/database"
	"github.com/playperu/citymarble/internal/handler/health"
	"github.com/playperu/citymarble/internal/messages"
	"github.com/playperu/citymarble/internal/migrations"
	"github.com/playperu/citymarble/internal/server"
	"github.com/playperu/citymarble/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Content DB ---
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating db dir: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := content.NewStore(db)
	board, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	logger.Info("content loaded",
		"tiles", len(board.Tiles),
		"events", len(board.Events),
		"quizzes", len(board.Quizzes),
	)

	// --- Sessions ---
	printer := messages.New(cfg.Language)
	sessions := session.NewRegistry(logger, board, session.Options{
		Printer:          printer,
		Pacing:           animation.Pacing{Speed: cfg.AnimationSpeed},
		IdleTTL:          cfg.SessionIdleTTL,
		DefaultMaxRounds: cfg.DefaultMaxRounds,
	})
	defer sessions.Close()
	logger.Info("session registry ready", "language", printer.Language().String(), "idle_ttl", cfg.SessionIdleTTL.String())

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, sessions, cfg.SPADir, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, map[string]health.Checker{
			"sqlite":  dbChecker{db},
			"content": store,
		}).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	g.Go(func() error {
		return sessions.Janitor(gctx, janitorInterval(cfg.SessionIdleTTL))
	})

	return g.Wait()
}

// janitorInterval sweeps a few times per TTL and at least once a minute.
func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Hour
	}
	return min(max(ttl/4, time.Second), time.Minute)
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }
