package persistence

import (
	"context"

	"go.uber.org/zap"
)

const postgresSchema = `
    CREATE TABLE IF NOT EXISTS employees (
        id         SERIAL PRIMARY KEY,
        name       VARCHAR(100) NOT NULL,
        department VARCHAR(50),
        salary     NUMERIC(10,2) NOT NULL
    )`

const sqliteSchema = `
    CREATE TABLE IF NOT EXISTS employees (
        id         INTEGER PRIMARY KEY AUTOINCREMENT,
        name       VARCHAR(100) NOT NULL,
        department VARCHAR(50),
        salary     DECIMAL(10,2) NOT NULL
    )`

// Store is the part of a backend the application needs outside the repositories.
type Store interface {
	Driver() string
	Ping(ctx context.Context) error
	EnsureSchema(ctx context.Context) error
}

// PrepareSchema runs EnsureSchema when enabled.
func PrepareSchema(ctx context.Context, store Store, enabled bool, logger *zap.Logger) error {
	if store == nil {
		logger.Warn("no database configured; skipping schema check")
		return nil
	}
	if !enabled {
		logger.Info("schema check disabled", zap.String("driver", store.Driver()))
		return nil
	}
	return store.EnsureSchema(ctx)
}
