// Package driver abstracts the database bastion stores user accounts in.
package driver

import (
	"context"

	"go.inout.gg/bastion/internal/dbsqlc"
)

type Querier interface {
	Queries() dbsqlc.Querier
}

type ExecutorTx interface {
	Queries() dbsqlc.Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Driver interface {
	Begin(context.Context) (ExecutorTx, error)
	Ping(context.Context) error
	Querier
}
