package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/logging"
	"github.com/nfrund/unisocial/internal/server"
)

func main() {
	logging.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, config.New()); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
