package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/statcast-tools/baseball-utilities/internal/table"
)

// UploadTable replaces tableName with the contents of t and returns the
// number of rows copied.
//
// The table is dropped and recreated with column types inferred from
// the first non-missing value of each column, then filled with COPY.
// The three steps run on one connection without a transaction, so a
// failed copy leaves an empty table behind. Only t's own columns are
// written; no row-number column is added.
func (r *StatcastRepository) UploadTable(ctx context.Context, tableName string, t *table.Table) (int64, error) {
	conn, err := r.connector.Connect(ctx)
	if err != nil {
		r.logFailure(err, "upload_table").Str("table", tableName).Msg("upload failed")
		return 0, fmt.Errorf("upload table %s: %w", tableName, err)
	}
	defer conn.Close(ctx)

	ident := identifier(tableName)

	steps := []string{
		"DROP TABLE IF EXISTS " + ident.Sanitize(),
		CreateTableStatement(ident, t),
	}
	for _, sql := range steps {
		if _, err := conn.Exec(ctx, sql); err != nil {
			r.logFailure(err, "upload_table").Str("table", tableName).Str("sql", sql).Msg("upload failed")
			return 0, fmt.Errorf("upload table %s: %w", tableName, err)
		}
	}

	copied, err := conn.CopyFrom(ctx, ident, t.Columns(), pgx.CopyFromRows(copyRows(t)))
	if err != nil {
		r.logFailure(err, "upload_table").Str("table", tableName).Msg("copy failed")
		return 0, fmt.Errorf("upload table %s: %w", tableName, err)
	}

	r.log.Info().
		Str("table", tableName).
		Int64("rows", copied).
		Int("columns", t.NumColumns()).
		Msg("uploaded table")

	return copied, nil
}

// identifier splits an optional schema prefix: "analysis.swings" is
// {"analysis", "swings"}.
func identifier(tableName string) pgx.Identifier {
	return pgx.Identifier(strings.Split(tableName, "."))
}

// CreateTableStatement builds the CREATE TABLE statement for t.
func CreateTableStatement(ident pgx.Identifier, t *table.Table) string {
	columns := t.Columns()
	defs := make([]string, len(columns))
	for i, name := range columns {
		values, _ := t.Column(name)
		defs[i] = pgx.Identifier{name}.Sanitize() + " " + ColumnType(values)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", ident.Sanitize(), strings.Join(defs, ", "))
}

// ColumnType infers a Postgres type from the first non-missing value.
// Columns with no usable value are TEXT.
func ColumnType(values []any) string {
	for _, v := range values {
		if table.IsMissing(v) {
			continue
		}
		switch v.(type) {
		case int, int8, int16, int32, int64, uint8, uint16, uint32:
			return "BIGINT"
		case float32, float64:
			return "DOUBLE PRECISION"
		case bool:
			return "BOOLEAN"
		case time.Time:
			return "TIMESTAMPTZ"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}

// copyRows returns the rows of t with missing values as nil.
func copyRows(t *table.Table) [][]any {
	rows := make([][]any, t.NumRows())
	for i := range rows {
		row := t.Row(i)
		for j, v := range row {
			if table.IsMissing(v) {
				row[j] = nil
			}
		}
		rows[i] = row
	}
	return rows
}
