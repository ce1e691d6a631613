package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/statcast-tools/baseball-utilities/internal/database"
	"github.com/statcast-tools/baseball-utilities/internal/sqlerr"
	"github.com/statcast-tools/baseball-utilities/internal/table"
)

const (
	// StatcastTable is the pitch-by-pitch table every year query reads.
	StatcastTable = "statcast_all"

	// SwingFilter keeps rows with both swing tracking measurements.
	SwingFilter = "AND swing_length IS NOT NULL AND bat_speed IS NOT NULL"
)

// Connector hands out a fresh connection per call.
type Connector interface {
	Connect(ctx context.Context) (database.Conn, error)
}

// StatcastRepository runs the statcast queries. Each method opens its
// own connection and closes it before returning.
type StatcastRepository struct {
	connector Connector
	log       *zerolog.Logger
}

func NewStatcastRepository(connector Connector, logger *zerolog.Logger) *StatcastRepository {
	return &StatcastRepository{
		connector: connector,
		log:       logger,
	}
}

// GetConnection returns a new connection. The caller closes it.
func (r *StatcastRepository) GetConnection(ctx context.Context) (database.Conn, error) {
	return r.connector.Connect(ctx)
}

// YearQuery builds the statement QueryYear runs. whereClause is appended
// verbatim and is expected to start with AND.
func YearQuery(year int, whereClause string) string {
	return fmt.Sprintf(`
		SELECT * FROM %s
		WHERE game_year = %d
		%s;
	`, StatcastTable, year, whereClause)
}

// DescriptionQuery builds the statement GetDescriptionData runs.
func DescriptionQuery(year int) string {
	return fmt.Sprintf(`
		SELECT * FROM %s
		WHERE events IS NOT NULL
		AND game_year = %d;
	`, StatcastTable, year)
}

// TableQuery builds the statement GetTable runs.
func TableQuery(tableName string) string {
	return fmt.Sprintf(`
		SELECT * FROM %s
	`, tableName)
}

// QueryYear returns every statcast row for year, optionally narrowed by
// extra AND conditions. It logs the row count.
//
//	QueryYear(ctx, 2024, "")
//	QueryYear(ctx, 2024, "AND swing_length IS NOT NULL AND bat_speed IS NOT NULL")
func (r *StatcastRepository) QueryYear(ctx context.Context, year int, whereClause string) (*table.Table, error) {
	t, err := r.query(ctx, YearQuery(year, whereClause))
	if err != nil {
		r.logFailure(err, "query_year").Int("year", year).Msg("year query failed")
		return nil, fmt.Errorf("query year %d: %w", year, err)
	}

	r.log.Info().
		Int("year", year).
		Int("rows", t.NumRows()).
		Msgf("%d: %d rows", year, t.NumRows())

	return t, nil
}

// GetPBPData returns the statcast rows of every year, concatenated in
// the order the years are given.
func (r *StatcastRepository) GetPBPData(ctx context.Context, years []int) (*table.Table, error) {
	return r.queryYears(ctx, years, "")
}

// GetSwingData is GetPBPData restricted to rows with swing measurements.
func (r *StatcastRepository) GetSwingData(ctx context.Context, years []int) (*table.Table, error) {
	return r.queryYears(ctx, years, SwingFilter)
}

func (r *StatcastRepository) queryYears(ctx context.Context, years []int, whereClause string) (*table.Table, error) {
	parts := make([]*table.Table, 0, len(years))
	for _, year := range years {
		t, err := r.QueryYear(ctx, year, whereClause)
		if err != nil {
			return nil, err
		}
		parts = append(parts, t)
	}
	return table.Concat(parts...), nil
}

// GetDescriptionData returns the rows of year that ended in an event.
func (r *StatcastRepository) GetDescriptionData(ctx context.Context, year int) (*table.Table, error) {
	t, err := r.query(ctx, DescriptionQuery(year))
	if err != nil {
		r.logFailure(err, "get_description_data").Int("year", year).Msg("description query failed")
		return nil, fmt.Errorf("query events for %d: %w", year, err)
	}
	return t, nil
}

// GetTable returns the whole of tableName. The name is used as given, so
// schema-qualified names work.
//
//	GetTable(ctx, "fangraphs_batting_min_400_2024")
func (r *StatcastRepository) GetTable(ctx context.Context, tableName string) (*table.Table, error) {
	t, err := r.query(ctx, TableQuery(tableName))
	if err != nil {
		r.logFailure(err, "get_table").Str("table", tableName).Msg("table query failed")
		return nil, fmt.Errorf("query table %s: %w", tableName, err)
	}
	return t, nil
}

func (r *StatcastRepository) query(ctx context.Context, sql string) (*table.Table, error) {
	conn, err := r.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, sql)
	if err != nil {
		return nil, err
	}

	return collect(rows)
}

func (r *StatcastRepository) logFailure(err error, operation string) *zerolog.Event {
	return r.log.Error().
		Err(err).
		Str("operation", operation).
		Str("kind", string(sqlerr.Classify(err))).
		Str("sqlstate", sqlerr.Code(err))
}

// collect drains rows into a table. Column names come from the field
// descriptions so an empty result still carries its schema.
func collect(rows pgx.Rows) (*table.Table, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	t := table.New(columns...)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		if err := t.AppendRow(values...); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// normalize turns driver-specific values into plain Go values.
// NUMERIC becomes float64 (NaN stays NaN, so it counts as missing) and
// raw bytes become strings.
func normalize(v any) any {
	switch x := v.(type) {
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case []byte:
		return string(x)
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}
