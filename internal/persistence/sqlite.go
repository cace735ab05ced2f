package persistence

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/staffdesk/employee-manager/internal/config"
)

// SQLite opens the database file once per operation.
type SQLite struct {
	path   string
	logger *zap.Logger
}

// NewSQLite builds the connector.
func NewSQLite(cfg config.SQLiteConfig, logger *zap.Logger) *SQLite {
	return &SQLite{path: cfg.Path, logger: logger}
}

// Driver names the backend.
func (s *SQLite) Driver() string {
	return config.DriverSQLite
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return s.path
}

// Open returns a handle limited to a single connection. The caller closes it.
func (s *SQLite) Open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(config.DriverSQLite, s.path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Ping verifies the database file can be opened.
func (s *SQLite) Ping(ctx context.Context) error {
	db, err := s.Open(ctx)
	if err != nil {
		return err
	}
	return db.Close()
}

// EnsureSchema creates the employees table when it does not exist.
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	db, err := s.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create employees table: %w", err)
	}
	s.logger.Info("schema ready", zap.String("driver", s.Driver()), zap.String("path", s.path))
	return nil
}
