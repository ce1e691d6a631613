// Package logger configures the application's logging.
//
// It uses *ZeroLog* for structured logs and provides the adapters the
// database layer needs to route pgx query traces through zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/statcast-tools/baseball-utilities/internal/config"
)

// ServiceName tags every log line.
const ServiceName = "baseball-utilities"

// New builds the main logger from the logging config.
//
// JSON output is used when Format is "json", a human-friendly console
// writer otherwise. Unknown levels fall back to info.
func New(cfg *config.LoggingConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg *config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := ParseLevel(cfg.GetLogLevel())

	var writer io.Writer = out
	if cfg.Format != "json" {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", ServiceName).
		Str("environment", cfg.Environment).
		Logger()
}

// ParseLevel maps a config level string to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewPgxLogger returns the logger used for SQL tracing. It writes
// wherever base writes, tagged with the database component.
func NewPgxLogger(base zerolog.Logger, level zerolog.Level) zerolog.Logger {
	return base.Level(level).
		With().
		Str("component", "database").
		Logger()
}

// GetPgxTraceLogLevel converts a zerolog level to the pgx tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
