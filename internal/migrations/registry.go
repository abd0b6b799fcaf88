// Package migrations holds the bastion database schema.
package migrations

import (
	"embed"

	"go.inout.gg/conduit/conduitregistry"
)

// Registry holds the user table migrations, both embedded SQL files and
// Go migrations registered from this package.
var Registry = conduitregistry.New("inout/bastion") //nolint:gochecknoglobals

//go:embed *.up.sql *.down.sql
var sqlMigrations embed.FS

//nolint:gochecknoinits
func init() {
	Registry.FromFS(sqlMigrations)
}
