package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitormoschetta/captionai/internal/config"
	"github.com/vitormoschetta/captionai/internal/handler"
	"github.com/vitormoschetta/captionai/internal/logger"
	"github.com/vitormoschetta/captionai/internal/server"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	h := handler.NewHandler(srv)
	srv.SetupRouter(h.HandleHealth, h.HandleCaption)

	if err := srv.Start(ctx); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
