package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"session-router/internal/common/logging"
	"session-router/internal/config"
	"session-router/internal/host"
	"session-router/internal/middleware"
	"session-router/internal/server"
)

// main wires the session router for standalone operation: the routing
// middleware plus its status surface. Host capabilities (session injection,
// channel adapters) are supplied by the embedding host process; when run
// standalone they are absent and deliveries degrade to counted failures,
// which keeps the reporting surface inspectable without a host.
func main() {
	_ = godotenv.Load()

	logging.InitGlobalLogger()
	defer logging.MustSync()
	logger := logging.GetGlobalLogger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", err)
		os.Exit(1)
	}

	provider := config.NewFileProvider(cfg.RoutesFile, logger)

	router := middleware.New(provider, host.Capabilities{Logger: logger})
	if err := router.Start(); err != nil {
		logger.Error("failed to start session router", err)
		os.Exit(1)
	}

	handlers := server.NewHandlers(router, logger)
	srv := server.New(handlers.Routes(), cfg.Port, cfg.TLSCert, cfg.TLSKey)
	if err := srv.Start(); err != nil {
		logger.Error("failed to start status server", err)
		os.Exit(1)
	}
	logger.Info("status server listening", logging.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("status server shutdown failed", err)
	}

	// Stop resets the stats recorder; in-flight dispatches are not awaited.
	if err := router.Stop(); err != nil {
		logger.Error("session router stop failed", err)
	}
}
