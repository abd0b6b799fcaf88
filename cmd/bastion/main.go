package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		cancel()
		log.Fatal(err)
	}

	cancel()
}

func newApp() *cli.App {
	//nolint:exhaustruct
	return &cli.App{
		Name:  "bastion",
		Usage: "user account service",
		Commands: []*cli.Command{
			serveCommand(),
			createSuperuserCommand(),
			migrateCommand(),
		},
	}
}
