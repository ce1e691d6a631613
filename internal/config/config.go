// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when one exists), loads them into structured Go types, and
// validates that required values are present so the query helpers
// fail fast on a bad database target.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values.
//   - Provide sane defaults for optional blocks (e.g. logging).
package config

import (
	"fmt"
	"strings"

	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/statcast-tools/baseball-utilities/internal/validation"
)

/*
	Env vars are read using the STATCAST_ prefix. After the prefix is
	removed the key is lowercased and the first "_" becomes the nesting
	delimiter, so:

		STATCAST_DATABASE_HOST     -> database.host     -> Config.Database.Host
		STATCAST_DATABASE_SSL_MODE -> database.ssl_mode -> Config.Database.SSLMode
		STATCAST_LOGGING_LEVEL     -> logging.level     -> Config.Logging.Level
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "STATCAST_"

// DefaultEnv is used when STATCAST_PRIMARY_ENV is unset. SQL statement
// tracing is reserved for "local".
const DefaultEnv = "development"

// Config is the root configuration object.
//
// Logging is a pointer because it is optional. If not provided,
// defaults are injected by Load.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Logging  *LoggingConfig `koanf:"logging"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// DatabaseConfig is the Postgres target holding the statcast tables.
type DatabaseConfig struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"required,min=1,max=65535"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password" validate:"required"`
	Name     string `koanf:"name" validate:"required"`
	SSLMode  string `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`

	// ConnectTimeout is in seconds. Zero leaves the driver default.
	ConnectTimeout int `koanf:"connect_timeout" validate:"min=0"`
}

// defaults are applied before the environment is loaded so every
// key can still be overridden.
var defaults = map[string]any{
	"primary.env":       DefaultEnv,
	"database.ssl_mode": "disable",
}

// Load reads configuration from the environment, validates it, and
// fills in the optional blocks.
func Load() (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	return fromKoanf(k)
}

// envKey turns STATCAST_DATABASE_SSL_MODE into database.ssl_mode.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, err
	}

	cfg.Normalize()

	if err := cfg.Logging.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}

	return cfg, nil
}

// Normalize fills the optional blocks. A nil or partial logging block
// gets the same defaults Load gives it, and its Environment always
// follows Primary.Env.
func (c *Config) Normalize() {
	if c.Logging == nil {
		c.Logging = DefaultLoggingConfig()
	}
	c.Logging.Environment = c.Primary.Env
	c.Logging.applyDefaults()
}

// Validate runs struct-tag validation on an already built Config.
// Callers constructing a Config by hand call Normalize first.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if c.Logging != nil {
		return c.Logging.Validate()
	}
	return nil
}
