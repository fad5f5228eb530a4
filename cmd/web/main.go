package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"portfolio_backend/internal/app"
	"portfolio_backend/internal/logger"
)

func main() {
	a, err := app.New()
	if err != nil {
		logger.Init("development")
		logger.Fatal("failed to start", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		logger.Fatal("server error", "error", err)
	}
}
