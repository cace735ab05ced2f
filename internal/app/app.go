// Package app assembles the storage backend, services and event plumbing
// shared by the console shell and the HTTP API.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/staffdesk/employee-manager/internal/config"
	"github.com/staffdesk/employee-manager/internal/events"
	"github.com/staffdesk/employee-manager/internal/observability"
	"github.com/staffdesk/employee-manager/internal/persistence"
	"github.com/staffdesk/employee-manager/internal/repository"
	"github.com/staffdesk/employee-manager/internal/service"
	"github.com/staffdesk/employee-manager/internal/worker"
)

// App holds the long-lived components of a process.
type App struct {
	Store     persistence.Store
	Redis     *persistence.Redis
	Metrics   *observability.Metrics
	Employees *service.EmployeeService
}

// Build wires the backend selected by cfg.Database.Driver.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	var (
		store persistence.Store
		repo  repository.EmployeeRepository
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(cfg.Postgres, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		store, repo = pg, repository.NewPostgresEmployeeRepository(pg)
	case config.DriverSQLite:
		lite := persistence.NewSQLite(cfg.SQLite, logger)
		store, repo = lite, repository.NewSQLiteEmployeeRepository(lite)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if err := persistence.PrepareSchema(ctx, store, cfg.Database.EnsureSchema, logger); err != nil {
		logger.Warn("schema check failed", zap.String("driver", store.Driver()), zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, logger, redis, cfg.Redis)

	metrics := observability.NewMetrics()
	employees := service.NewEmployeeService(service.EmployeeDependencies{
		Repo:       repo,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	logger.Info("storage configured", zap.String("driver", store.Driver()))
	return &App{
		Store:     store,
		Redis:     redis,
		Metrics:   metrics,
		Employees: employees,
	}, nil
}

// Close releases process-wide resources.
func (a *App) Close() {
	if a == nil {
		return
	}
	a.Redis.Close()
}

// LogMetrics writes the counters collected during the process lifetime.
func (a *App) LogMetrics(logger *zap.Logger) {
	for _, c := range a.Metrics.Snapshot() {
		logger.Info("counter", zap.String("key", c.Key), zap.Int64("value", c.Value))
	}
}
