package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/blog-platform/internal/app/blogplatform"
	"github.com/magabrotheeeer/blog-platform/internal/config"

	_ "github.com/magabrotheeeer/blog-platform/docs"
)

// @title Blog Platform API
// @version 1.0
// @description Бэкенд блог-платформы: учётные записи, публикации, подписки и лента.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting blog-platform", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := blogplatform.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("app stopped gracefully")
}
