// Package config loads the process configuration from the environment.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	dotenv "github.com/joho/godotenv"
)

// DefaultEnvironment is used when ENVIRONMENT is not set.
const DefaultEnvironment = "development"

type Config struct {
	// Environment selects the .env.<environment> file to load.
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	Application ApplicationConfig `envPrefix:"APP_"`
	Database    DatabaseConfig    `envPrefix:"DB_"`
}

type ApplicationConfig struct {
	Host        string `env:"HOST"        envDefault:"127.0.0.1"`
	Port        uint16 `env:"PORT"        envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"` // defaults to Config.Environment
	APIVersion  string `env:"API_VERSION" envDefault:"v1"`

	// PasswordMinLength and PasswordRequiredChars configure the strength
	// check of passwords set over HTTP. PasswordRequiredChars holds
	// "::"-separated character groups, e.g. "0123456789::!@#$%".
	PasswordMinLength     int    `env:"PASSWORD_MIN_LENGTH"     envDefault:"8"`
	PasswordRequiredChars string `env:"PASSWORD_REQUIRED_CHARS"`

	LogLevel  slog.Level `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"` // text or json

	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT"        envDefault:"15s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       envDefault:"15s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT"        envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT"    envDefault:"10s"`
}

// BasePath returns the URL path prefix of the versioned API, e.g. /api/v1.
func (c *ApplicationConfig) BasePath() string {
	return "/api/" + c.APIVersion
}

// BindAddress returns the host:port the HTTP server listens on.
func (c *ApplicationConfig) BindAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

type DatabaseConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     uint16 `env:"PORT"     envDefault:"5432"`
	Name     string `env:"NAME"     envDefault:"bastion"`
	User     string `env:"USER"     envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"password"`
	SSLMode  string `env:"SSLMODE"  envDefault:"disable"`

	MaxConnections int32 `env:"MAX_CONNECTIONS" envDefault:"10"`
	MinConnections int32 `env:"MIN_CONNECTIONS" envDefault:"5"`

	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"8s"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT"    envDefault:"8s"`
	MaxLifetime    time.Duration `env:"MAX_LIFETIME"    envDefault:"8s"`
}

// URL returns the Postgres connection URL.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port))),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}

	return u.String()
}

// Load reads .env files and parses the configuration from the process
// environment.
//
// Files are read in order .env.<environment>.local, .env.<environment>, .env.
// Variables already set are never overridden, so earlier files and the real
// environment win.
func Load() (*Config, error) {
	environment := cmp.Or(os.Getenv("ENVIRONMENT"), DefaultEnvironment)

	for _, f := range []string{
		".env." + environment + ".local",
		".env." + environment,
		".env",
	} {
		if err := dotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("bastion/config: failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("bastion/config: failed to parse environment: %w", err)
	}

	return cfg.finalize()
}

// Parse parses the configuration from environ only, without reading
// .env files or the process environment.
func Parse(environ map[string]string) (*Config, error) {
	var cfg Config

	//nolint:exhaustruct
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("bastion/config: failed to parse environment: %w", err)
	}

	return cfg.finalize()
}

func (c *Config) finalize() (*Config, error) {
	c.Application.Environment = cmp.Or(c.Application.Environment, c.Environment)

	switch c.Application.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("bastion/config: unknown log format %q", c.Application.LogFormat)
	}

	if c.Application.APIVersion == "" || strings.ContainsAny(c.Application.APIVersion, "/ {}") {
		return nil, fmt.Errorf("bastion/config: invalid API version %q", c.Application.APIVersion)
	}

	if c.Application.PasswordMinLength < 1 {
		return nil, fmt.Errorf(
			"bastion/config: APP_PASSWORD_MIN_LENGTH must be positive, got %d",
			c.Application.PasswordMinLength,
		)
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return nil, fmt.Errorf(
			"bastion/config: DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)",
			c.Database.MinConnections,
			c.Database.MaxConnections,
		)
	}

	return c, nil
}
