// Package bastionmigrate applies and rolls back the bastion database schema.
package bastionmigrate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.inout.gg/conduit"

	"go.inout.gg/bastion/internal/migrations"
)

const (
	DefaultUpStep   = conduit.DefaultUpStep
	DefaultDownStep = conduit.DefaultDownStep
)

// Migrator rolls bastion's migrations up and down in order.
type Migrator struct {
	base *conduit.Migrator
}

// MigrateOptions specifies options for migration operation.
type MigrateOptions struct {
	// Steps limits the number of migrations applied or rolled back.
	// Zero means the conduit default for the direction.
	Steps int
}

// toConduit converts these options to a conduit migration options.
func (opts *MigrateOptions) toConduit() *conduit.MigrateOptions {
	return &conduit.MigrateOptions{
		Steps: opts.Steps,
	}
}

// New creates a new conduit migrator over the bastion registry.
func New() *Migrator {
	base := conduit.NewMigrator(conduit.NewConfig(func(c *conduit.Config) {
		c.Registry = migrations.Registry
	}))

	return &Migrator{base}
}

// Up applies pending migrations. A nil opts applies all of them.
func (m *Migrator) Up(ctx context.Context, conn *pgx.Conn, opts *MigrateOptions) error {
	_, err := m.base.Migrate(ctx, conduit.DirectionUp, conn, conduitOptions(opts))
	if err != nil {
		return fmt.Errorf("bastionmigrate: failed to apply migrations: %w", err)
	}

	return nil
}

// Down rolls back applied migrations. A nil opts uses conduit's default step.
func (m *Migrator) Down(ctx context.Context, conn *pgx.Conn, opts *MigrateOptions) error {
	_, err := m.base.Migrate(ctx, conduit.DirectionDown, conn, conduitOptions(opts))
	if err != nil {
		return fmt.Errorf("bastionmigrate: failed to rollback migrations: %w", err)
	}

	return nil
}

func conduitOptions(opts *MigrateOptions) *conduit.MigrateOptions {
	if opts == nil || opts.Steps == 0 {
		return nil
	}

	return opts.toConduit()
}
