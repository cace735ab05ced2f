package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/staffdesk/employee-manager/internal/app"
	"github.com/staffdesk/employee-manager/internal/config"
	"github.com/staffdesk/employee-manager/internal/observability"
	"github.com/staffdesk/employee-manager/internal/shell"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	application, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}
	defer application.Close()

	sh := shell.New(os.Stdin, os.Stdout, os.Stderr, application.Employees, logger)
	if err := sh.Run(ctx); err != nil {
		logger.Info("shell stopped", zap.Error(err))
	}
	application.LogMetrics(logger)
}
