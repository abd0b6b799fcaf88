package testutil

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.inout.gg/foundations/sqldb/sqldbtest"

	"go.inout.gg/bastion/bastionmigrate"
)

var migrator = bastionmigrate.New() //nolint:gochecknoglobals

// MustDB creates a new migrated testing database.
//
// It is skipped in -short mode.
func MustDB(ctx context.Context, t *testing.T) *sqldbtest.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("database tests are skipped in short mode")
	}

	return sqldbtest.Must(ctx, t, sqldbtest.WithUp(func(ctx context.Context, conn *pgx.Conn) error {
		return migrator.Up(ctx, conn, nil)
	}))
}
