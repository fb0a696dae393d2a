package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/msomdec/lotes-map/internal/config"
	"github.com/msomdec/lotes-map/internal/domain"
	"github.com/msomdec/lotes-map/internal/handler"
	"github.com/msomdec/lotes-map/internal/repository/jsonfile"
	"github.com/msomdec/lotes-map/internal/repository/memory"
	"github.com/msomdec/lotes-map/internal/repository/sqlite"
	"github.com/msomdec/lotes-map/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// run starts the server and blocks until it stops. Every resource it opens
// is released before it returns.
func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	for _, w := range cfg.Warnings() {
		slog.Warn(w)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open %s record store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	plotService := service.NewPlotService(store, nil)
	authService := service.NewAuthService(store)
	sessionService := service.NewSessionService(cfg.SessionSecret)

	limiter := service.NewTokenBucket(cfg.AuthRate, cfg.AuthBurst)
	defer limiter.Close()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, plotService, authService, sessionService, limiter, cfg.CookieSecure)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.LogRequests(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.StoreDriver)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// openStore builds the record store selected by cfg. The returned func
// releases it.
func openStore(cfg config.Config) (domain.RecordStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(context.Background()); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		slog.Info("database migrations applied", "path", cfg.DatabasePath)
		return db.Collections(), func() { db.Close() }, nil
	case config.DriverMemory:
		return memory.New(), func() {}, nil
	default:
		slog.Info("using JSON file store", "dir", cfg.DataDir)
		return jsonfile.New(cfg.DataDir), func() {}, nil
	}
}
