package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrSnakeDoc/connector/internal/app"
	"github.com/MrSnakeDoc/connector/internal/config"
	"github.com/MrSnakeDoc/connector/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("connector failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	loggerClient, err := logger.New(cfg.LogLevel, cfg.PrettyLog)
	if err != nil {
		return err
	}
	defer func() { _ = loggerClient.Sync() }()
	loggerClient.Debugf("cfg: %+v", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, loggerClient)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
