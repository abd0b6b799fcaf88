package main

import (
	"github.com/urfave/cli/v2"

	"go.inout.gg/bastion/db/driverpgxv5"
	"go.inout.gg/bastion/internal/server"
)

func serveCommand() *cli.Command {
	//nolint:exhaustruct
	return &cli.Command{
		Name:  "serve",
		Usage: "start the HTTP server",
		Action: func(c *cli.Context) error {
			env, err := newEnv(c.Context)
			if err != nil {
				return err
			}
			defer env.Close()

			srv := server.New(
				env.logger,
				&env.config.Application,
				driverpgxv5.New(env.logger, env.pool),
			)

			return srv.Run(c.Context) //nolint:wrapcheck
		},
	}
}
