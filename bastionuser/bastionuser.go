// Package bastionuser implements user account management on top of the
// password hash records of package password: registration, superuser
// provisioning, authentication and password changes.
package bastionuser

import (
	"cmp"
	"log/slog"

	"go.inout.gg/foundations/debug"

	"go.inout.gg/bastion"
	"go.inout.gg/bastion/bastionpasswordverifier"
	"go.inout.gg/bastion/password"
)

//nolint:gochecknoglobals
var d = debug.Debuglog("bastion/user")

// Config is the configuration for the user handler.
type Config struct {
	Logger         *slog.Logger
	PasswordHasher password.PasswordHasher

	// PasswordVerifier checks new passwords before they are hashed.
	// Nil disables the check.
	PasswordVerifier bastionpasswordverifier.PasswordVerifier
}

func (c *Config) defaults() {
	c.Logger = cmp.Or(c.Logger, bastion.DefaultLogger)
	c.PasswordHasher = cmp.Or(c.PasswordHasher, password.DefaultPasswordHasher)
}

func (c *Config) assert() {
	debug.Assert(c.PasswordHasher != nil, "PasswordHasher must be set")
	debug.Assert(c.Logger != nil, "Logger must be set")
}

// NewConfig creates a new config.
//
// If no password hasher is configured, the password.DefaultPasswordHasher will be used.
func NewConfig(opts ...func(*Config)) *Config {
	//nolint:exhaustruct
	config := Config{}
	for _, opt := range opts {
		opt(&config)
	}

	config.defaults()
	config.assert()

	return &config
}

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) func(*Config) {
	return func(cfg *Config) { cfg.Logger = logger }
}

// WithPasswordHasher configures the password hasher.
//
// Records produced by one hasher are only verifiable by the same algorithm,
// so use the same hasher for every handler sharing a database.
func WithPasswordHasher(hasher password.PasswordHasher) func(*Config) {
	return func(cfg *Config) { cfg.PasswordHasher = hasher }
}

// WithPasswordVerifier enables password strength checks for new passwords.
func WithPasswordVerifier(verifier bastionpasswordverifier.PasswordVerifier) func(*Config) {
	return func(cfg *Config) { cfg.PasswordVerifier = verifier }
}
