package database

import (
	"context"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/statcast-tools/baseball-utilities/internal/config"
	loggerConfig "github.com/statcast-tools/baseball-utilities/internal/logger"
)

// multiTracer allows chaining multiple tracers.
//
// pgx supports a single Tracer in ConnConfig, so the local SQL logger and
// the slow-query tracer are combined here. Each tracer is checked at
// runtime for TraceQueryStart/TraceQueryEnd support.
type multiTracer struct {
	tracers []any
}

// TraceQueryStart calls every tracer that supports it, threading ctx
// through each call.
func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

// TraceQueryEnd calls every tracer that supports it.
func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

type slowQueryKey struct{}

type slowQueryStart struct {
	sql   string
	start time.Time
}

// slowQueryTracer warns about statements that run longer than threshold.
type slowQueryTracer struct {
	threshold time.Duration
	log       *zerolog.Logger
	now       func() time.Time
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, slowQueryKey{}, slowQueryStart{sql: data.SQL, start: t.now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	started, ok := ctx.Value(slowQueryKey{}).(slowQueryStart)
	if !ok {
		return
	}

	elapsed := t.now().Sub(started.start)
	if elapsed < t.threshold {
		return
	}

	t.log.Warn().
		Str("sql", started.sql).
		Dur("duration", elapsed).
		Dur("threshold", t.threshold).
		Int64("rows_affected", data.CommandTag.RowsAffected()).
		Msg("slow query")
}

// newTracer picks the tracer for a connection config.
//
// The slow-query tracer is attached whenever a threshold is set. The
// local SQL logger is very noisy, so it is only attached in the local env
// or when the configured level is debug. Both together go through
// multiTracer.
func newTracer(env string, cfg *config.LoggingConfig, logger *zerolog.Logger) pgx.QueryTracer {
	var tracers []pgx.QueryTracer

	if cfg.SlowQueryThreshold > 0 {
		tracers = append(tracers, &slowQueryTracer{
			threshold: cfg.SlowQueryThreshold,
			log:       logger,
			now:       time.Now,
		})
	}

	if env == "local" || cfg.GetLogLevel() == "debug" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(*logger, globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	switch len(tracers) {
	case 0:
		return nil
	case 1:
		return tracers[0]
	default:
		mt := &multiTracer{}
		for _, t := range tracers {
			mt.tracers = append(mt.tracers, t)
		}
		return mt
	}
}
