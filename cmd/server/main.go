// Package main is the entry point for the F1 telemetry viewer HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/sebasr/f1-telemetry-viewer/internal/app"
	"github.com/sebasr/f1-telemetry-viewer/internal/config"
	"github.com/sebasr/f1-telemetry-viewer/internal/handlers"
	"github.com/sebasr/f1-telemetry-viewer/internal/logging"
	"github.com/sebasr/f1-telemetry-viewer/internal/server"
	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if err := run(context.Background(), cfg, logger, serve); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

type serveFunc func(router http.Handler, addr string) error

// serve blocks running the router on addr
func serve(router http.Handler, addr string) error {
	return http.ListenAndServe(addr, router)
}

// run builds the application and serves it until the listener fails.
// Deferred cleanup always runs because errors are returned, not fatal.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, listen serveFunc) error {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Error closing provider cache", zap.Error(err))
		}
	}()

	deps := &server.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Store:    view.NewStore(view.DefaultIdleTimeout),
		Pipeline: view.NewPipeline(a.Fetcher, cfg.Viewer.FrameDuration, logger),
	}
	// cache stays a nil interface when caching is disabled
	var cache handlers.HealthChecker
	if a.DB != nil {
		cache = a.DB
	}
	deps.Cache = cache

	// Create and start the server
	srv := server.New(deps)

	logger.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := listen(srv, ":"+cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
