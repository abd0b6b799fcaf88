package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"go.inout.gg/bastion/bastionuser"
	"go.inout.gg/bastion/db/driverpgxv5"
	"go.inout.gg/bastion/internal/random"
)

// generatedPasswordBytes gives a 32 character hex password.
const generatedPasswordBytes = 16

type superuserInput struct {
	Email     string
	Username  string
	Password  string
	Generated bool
}

func createSuperuserCommand() *cli.Command {
	//nolint:exhaustruct
	return &cli.Command{
		Name:  "createsuperuser",
		Usage: "create an administrator account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "email address"},
			&cli.StringFlag{Name: "username", Usage: "username"},
			&cli.StringFlag{Name: "password", Usage: "password (generated when empty)"},
		},
		Action: func(c *cli.Context) error {
			input, err := promptSuperuser(
				bufio.NewReader(os.Stdin),
				c.App.Writer,
				superuserInput{
					Email:    c.String("email"),
					Username: c.String("username"),
					Password: c.String("password"),
				},
			)
			if err != nil {
				return err
			}

			env, err := newEnv(c.Context)
			if err != nil {
				return err
			}
			defer env.Close()

			h := bastionuser.NewHandler(
				driverpgxv5.New(env.logger, env.pool),
				bastionuser.NewConfig(bastionuser.WithLogger(env.logger)),
			)

			user, err := h.CreateSuperuser(c.Context, input.Email, input.Username, input.Password)
			if err != nil {
				return fmt.Errorf("bastion: failed to create superuser: %w", err)
			}

			fmt.Fprintf(c.App.Writer, "Superuser %s (%s) created with id %s\n", user.Username, user.Email, user.ID)
			if input.Generated {
				fmt.Fprintf(c.App.Writer, "Generated password: %s\n", input.Password)
			}

			return nil
		},
	}
}

// promptSuperuser asks for every value missing from input.
//
// An empty email or username is an error. An empty password is replaced
// with a random one.
func promptSuperuser(in *bufio.Reader, out io.Writer, input superuserInput) (superuserInput, error) {
	var err error

	if input.Email == "" {
		if input.Email, err = prompt(in, out, "Email: "); err != nil {
			return input, err
		}

		if input.Email == "" {
			return input, errors.New("bastion: email is required")
		}
	}

	if input.Username == "" {
		if input.Username, err = prompt(in, out, "Username: "); err != nil {
			return input, err
		}

		if input.Username == "" {
			return input, errors.New("bastion: username is required")
		}
	}

	if input.Password == "" {
		if input.Password, err = prompt(in, out, "Password (leave empty to generate): "); err != nil {
			return input, err
		}
	}

	if input.Password == "" {
		input.Password, err = random.SecureHexString(generatedPasswordBytes)
		if err != nil {
			return input, fmt.Errorf("bastion: failed to generate password: %w", err)
		}

		input.Generated = true
	}

	return input, nil
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("bastion: failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}
