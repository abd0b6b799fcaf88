package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"go.inout.gg/bastion/internal/config"
)

const pingTimeout = 5 * time.Second

// NewPool creates a connection pool and makes sure the database is
// reachable.
func NewPool(ctx context.Context, logger *slog.Logger, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("bastion/server: failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	poolConfig.MinConns = cfg.MinConnections
	poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	poolConfig.MaxConnLifetime = cfg.MaxLifetime
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("bastion/server: failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bastion/server: failed to connect to database: %w", err)
	}

	logger.InfoContext(
		ctx,
		"connected to database",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Name),
		slog.Int("max_connections", int(cfg.MaxConnections)),
	)

	return pool, nil
}
