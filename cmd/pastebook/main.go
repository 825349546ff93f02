package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/danahertz/pastebook/internal/adapter/driven/auth"
	firestoreadapter "github.com/danahertz/pastebook/internal/adapter/driven/firestore"
	sqliteadapter "github.com/danahertz/pastebook/internal/adapter/driven/sqlite"
	httphandler "github.com/danahertz/pastebook/internal/adapter/driving/http"
	"github.com/danahertz/pastebook/internal/application"
	"github.com/danahertz/pastebook/internal/config"
	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration. The Firebase identity is evaluated exactly once
	// here; an incomplete set latches the process into local-only mode.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"remote_configured", cfg.Firebase.Configured(),
	)
	if !cfg.Firebase.Configured() {
		slog.Warn("remote store not configured, serving from local cache",
			"missing_fields", cfg.Firebase.MissingFields(),
		)
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the local cache database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on the writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire the local adapters.
	cache := sqliteadapter.NewCacheRepo(db, slog.Default())
	local := sqliteadapter.NewLocalStore(cache)

	// 6. Wire the remote store only when the identity is complete. The
	// selection happens once; there is no runtime re-check.
	identity := auth.NewStaticProvider(cfg.OwnerID, cfg.IDToken)

	var remote driven.TemplateStore
	if cfg.Firebase.Configured() {
		client, err := firestoreadapter.NewClient(ctx, cfg.Firebase.ProjectID,
			firestoreadapter.NewTokenSource(ctx, identity))
		if err != nil {
			return err
		}
		remote = client
		slog.Info("firestore client created", "project", cfg.Firebase.ProjectID)
	}

	// 7. Create the persistence facade and HTTP handler.
	svc := application.NewTemplateService(remote, local, cache, slog.Default())
	handler := httphandler.NewHandler(svc, identity, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.NewServeMux(handler, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("pastebook started",
		"listen_addr", cfg.ListenAddr,
		"remote", svc.RemoteEnabled(),
	)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
