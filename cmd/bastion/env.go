package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"go.inout.gg/bastion/internal/config"
	"go.inout.gg/bastion/internal/server"
)

// appEnv holds the process-wide dependencies shared by all commands.
type appEnv struct {
	config *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

func newEnv(ctx context.Context) (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	logger := server.NewLogger(os.Stderr, &cfg.Application)
	slog.SetDefault(logger)

	pool, err := server.NewPool(ctx, logger, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("bastion: %w", err)
	}

	return &appEnv{cfg, logger, pool}, nil
}

func (e *appEnv) Close() { e.pool.Close() }
