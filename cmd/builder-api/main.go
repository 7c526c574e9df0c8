package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flexos-dev/builder-gateway/internal/auth"
	"github.com/flexos-dev/builder-gateway/internal/chat"
	"github.com/flexos-dev/builder-gateway/internal/config"
	"github.com/flexos-dev/builder-gateway/internal/handler"
	"github.com/flexos-dev/builder-gateway/internal/server"
	"github.com/flexos-dev/builder-gateway/internal/storage"
	"github.com/flexos-dev/builder-gateway/internal/storage/memory"
	"github.com/flexos-dev/builder-gateway/internal/storage/sqlite"
	"github.com/flexos-dev/builder-gateway/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	shutdownTracer, err := telemetry.InitTracer("builder-gateway", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	if cfg.Anthropic.APIKey == "" && cfg.OpenAI.APIKey == "" {
		logger.Warn("no provider API key configured, all requests will use the mock provider")
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()
	logger.Info("storage ready", slog.String("type", cfg.Storage.Type))

	authenticator := auth.NewAuthenticator(cfg.Auth.APIKeyHashes)
	if authenticator == nil {
		logger.Warn("no API key hashes configured, the API is open")
	}

	svc := chat.NewService(cfg, logger)
	api := handler.New(cfg, svc, store, logger)

	srv := server.New(cfg.Server.Port, logger, authenticator)
	api.Routes(srv.Router)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case <-sigCh:
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Type == "sqlite" {
		path := cfg.Storage.SQLite.Path
		if path == "" {
			path = "./data/builder.db"
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		return sqlite.New(path)
	}
	return memory.New(), nil
}
