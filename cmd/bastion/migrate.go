package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"go.inout.gg/bastion/bastionmigrate"
)

func migrateCommand() *cli.Command {
	stepsFlag := &cli.IntFlag{
		Name:  "steps",
		Usage: "number of migrations to apply or roll back (0 means the default)",
	}

	//nolint:exhaustruct
	return &cli.Command{
		Name:  "migrate",
		Usage: "manage the database schema",
		Subcommands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply pending migrations",
				Flags:  []cli.Flag{stepsFlag},
				Action: migrateAction(true),
			},
			{
				Name:   "down",
				Usage:  "roll back applied migrations",
				Flags:  []cli.Flag{stepsFlag},
				Action: migrateAction(false),
			},
		},
	}
}

func migrateAction(up bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		steps := c.Int("steps")
		if steps < 0 {
			return fmt.Errorf("bastion: --steps must not be negative, got %d", steps)
		}

		env, err := newEnv(c.Context)
		if err != nil {
			return err
		}
		defer env.Close()

		conn, err := env.pool.Acquire(c.Context)
		if err != nil {
			return fmt.Errorf("bastion: failed to acquire connection: %w", err)
		}
		defer conn.Release()

		migrator := bastionmigrate.New()
		opts := &bastionmigrate.MigrateOptions{Steps: steps}

		if up {
			err = migrator.Up(c.Context, conn.Conn(), opts)
		} else {
			err = migrator.Down(c.Context, conn.Conn(), opts)
		}

		if err != nil {
			return err //nolint:wrapcheck
		}

		env.logger.InfoContext(c.Context, "migrations done", slog.Bool("up", up), slog.Int("steps", steps))

		return nil
	}
}
