package config

import (
	"fmt"
	"time"
)

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Environment mirrors Primary.Env. It is set by Load and is not
	// read from the environment directly.
	Environment string `koanf:"-"`

	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format, "json" or "console".
	Format string `koanf:"format"`

	// SlowQueryThreshold is the duration beyond which a statement is
	// logged as slow. Env values must be duration strings like "500ms".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// DefaultLoggingConfig is used when no logging block was provided.
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Environment:        DefaultEnv,
		Level:              "info",
		Format:             "console",
		SlowQueryThreshold: 5 * time.Second,
	}
}

// applyDefaults fills the fields a partial logging block left empty.
func (c *LoggingConfig) applyDefaults() {
	c.Level = c.GetLogLevel()
	if c.Format == "" {
		c.Format = "console"
		if c.IsProduction() {
			c.Format = "json"
		}
	}
	if c.SlowQueryThreshold == 0 {
		c.SlowQueryThreshold = DefaultLoggingConfig().SlowQueryThreshold
	}
}

// Validate applies rules that go beyond struct tags.
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Level)
	}

	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Format)
	}

	if c.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	return nil
}

// GetLogLevel returns the effective log level, "info" when none is set.
func (c *LoggingConfig) GetLogLevel() string {
	if c.Level != "" {
		return c.Level
	}
	return "info"
}

// IsProduction reports whether the configured environment is production.
func (c *LoggingConfig) IsProduction() bool {
	return c.Environment == "production"
}
