package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listings-console/internal/app"
	"listings-console/internal/config"
	"listings-console/internal/pkg/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.App.LogLevel).With("app", cfg.App.AppName, "env", cfg.App.Environment)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to bootstrap app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Warn("cleanup error", "error", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		logger.Error("invalid HTTP port", "error", err)
		return
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "api", cfg.API.BaseURL, "cache", cfg.Cache.Driver)
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn("shutdown error", "error", err)
		}
		logger.Info("server stopped")
	}
}
