package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/staffdesk/employee-manager/internal/config"
)

// Postgres hands out short-lived pgx connections. Nothing is pooled; every
// caller owns the connection it receives and must close it.
type Postgres struct {
	connCfg *pgx.ConnConfig
	logger  *zap.Logger
}

// NewPostgres parses the connection settings without dialing.
func NewPostgres(cfg config.PostgresConfig, dbCfg config.DatabaseConfig, logger *zap.Logger) (*Postgres, error) {
	connCfg, err := pgx.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if timeout := dbCfg.ConnectTimeout(); timeout > 0 {
		connCfg.ConnectTimeout = timeout
	}
	return &Postgres{connCfg: connCfg, logger: logger}, nil
}

// Driver names the backend.
func (p *Postgres) Driver() string {
	return config.DriverPostgres
}

// Connect opens a new connection.
func (p *Postgres) Connect(ctx context.Context) (*pgx.Conn, error) {
	return pgx.ConnectConfig(ctx, p.connCfg.Copy())
}

// Ping verifies connectivity with a throwaway connection.
func (p *Postgres) Ping(ctx context.Context) error {
	conn, err := p.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	return conn.Ping(ctx)
}

// EnsureSchema creates the employees table when it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	conn, err := p.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create employees table: %w", err)
	}
	p.logger.Info("schema ready", zap.String("driver", p.Driver()))
	return nil
}
