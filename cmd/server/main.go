package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meridianfs/meridian-backend/internal/api"
	"github.com/meridianfs/meridian-backend/internal/config"
	"github.com/meridianfs/meridian-backend/internal/identity"
	"github.com/meridianfs/meridian-backend/internal/logging"
	"github.com/meridianfs/meridian-backend/internal/notify"
	"github.com/meridianfs/meridian-backend/internal/repository"
	"github.com/meridianfs/meridian-backend/internal/repository/memory"
	"github.com/meridianfs/meridian-backend/internal/repository/postgres"
	"github.com/meridianfs/meridian-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// Select storage explicitly at startup; implementations are never mixed
	// at runtime.
	var repos *repository.Repositories
	switch cfg.Storage {
	case "memory":
		slog.Warn("using in-memory storage, data will not survive restarts")
		repos = memory.NewRepositories()
	default:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		repos = postgres.NewRepositories(db)
	}

	var notifier notify.Notifier
	if cfg.SMTPHost != "" {
		notifier, err = notify.NewMailer(cfg)
		if err != nil {
			slog.Error("failed to configure mailer", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("SMTP not configured, reset codes will be logged")
		notifier = notify.NewLogNotifier()
	}

	var provider identity.Provider
	if cfg.GoogleClientID != "" {
		provider = identity.NewGoogleProvider(cfg)
	}

	services := service.NewServices(repos, notifier, provider, cfg)
	router := api.NewRouter(services, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
