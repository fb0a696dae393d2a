// Package config loads server settings from the environment, with
// command-line flags taking precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

// Store drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// DefaultSessionSecret is used when SESSION_SECRET is unset. Fine for local
// development only.
const DefaultSessionSecret = "dev-secret-change-me"

// sessionSecretEnv names the variable holding the session signing key.
const sessionSecretEnv = "SESSION_SECRET"

type Config struct {
	Port          string  `envconfig:"PORT" default:"5000"`
	DataDir       string  `envconfig:"DATA_DIR" default:"data"`
	StoreDriver   string  `envconfig:"STORE_DRIVER" default:"json"`
	DatabasePath  string  `envconfig:"DATABASE_PATH"`
	SessionSecret string  `envconfig:"SESSION_SECRET"`
	// CookieSecure marks the session cookie Secure. The server itself only
	// speaks plain HTTP, so leave this on behind a TLS-terminating proxy and
	// turn it off for local development over http://.
	CookieSecure  bool    `envconfig:"COOKIE_SECURE" default:"true"`
	LogLevel      string  `envconfig:"LOG_LEVEL" default:"info"`
	AuthRate      float64 `envconfig:"AUTH_RATE" default:"1"`
	AuthBurst     float64 `envconfig:"AUTH_BURST" default:"10"`
}

// Load reads the environment and then applies any flags found in args
// (typically os.Args[1:]).
func Load(args []string) (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	fs := pflag.NewFlagSet("lotes-map", pflag.ContinueOnError)
	port := fs.String("port", c.Port, "HTTP listen port")
	dataDir := fs.StringP("data-dir", "d", c.DataDir, "directory holding the JSON collections")
	driver := fs.String("store", c.StoreDriver, "record store driver: json, sqlite or memory")
	dbPath := fs.String("db", c.DatabasePath, "SQLite database path (sqlite driver)")
	logLevel := fs.String("log-level", c.LogLevel, "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	c.Port = *port
	c.DataDir = *dataDir
	c.StoreDriver = *driver
	c.DatabasePath = *dbPath
	c.LogLevel = *logLevel

	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, "lotes.db")
	}
	// Set but empty is rejected by Validate rather than defaulted.
	if _, set := os.LookupEnv(sessionSecretEnv); !set {
		c.SessionSecret = DefaultSessionSecret
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the settings for values the server cannot run with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverJSON, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("session secret is required")
	}
	if c.AuthRate <= 0 || c.AuthBurst < 1 {
		return fmt.Errorf("auth rate limit must be positive (rate=%v burst=%v)", c.AuthRate, c.AuthBurst)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Warnings lists settings that are valid but likely wrong for the
// deployment. The caller logs them at startup.
func (c Config) Warnings() []string {
	var warnings []string
	if c.SessionSecret == DefaultSessionSecret {
		warnings = append(warnings, sessionSecretEnv+" not set, using the development default")
	}
	if c.CookieSecure {
		warnings = append(warnings, "COOKIE_SECURE is on and the server listens on plain HTTP; browsers will only send the session cookie over HTTPS, so serve through a TLS proxy or set COOKIE_SECURE=false for local use")
	}
	return warnings
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
