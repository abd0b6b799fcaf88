package migrations

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.inout.gg/conduit/conduitmigrate"

	"go.inout.gg/bastion"
)

// Bootstraps conduit's own bookkeeping tables before any bastion schema.
//
//nolint:gochecknoglobals,exhaustruct
var m20250807065800 = conduitmigrate.New(&conduitmigrate.Config{
	Logger: bastion.DefaultLogger,
})

//nolint:gochecknoinits
func init() {
	Registry.Up(up20250807065800)
	Registry.Down(down20250807065800)
}

func up20250807065800(ctx context.Context, conn *pgx.Conn) error {
	//nolint:wrapcheck
	return m20250807065800.Up(ctx, conn)
}

func down20250807065800(ctx context.Context, conn *pgx.Conn) error {
	//nolint:wrapcheck
	return m20250807065800.Down(ctx, conn)
}
