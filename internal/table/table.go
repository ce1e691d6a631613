// Package table holds query results in memory.
//
// A Table is an ordered list of named columns and an ordered list of
// rows. Row position is the index. A nil cell or a floating-point NaN
// is a missing value. Operations that filter or project return a new
// Table and leave the receiver untouched.
package table

import (
	"fmt"
	"math"
	"slices"
)

// Table is an in-memory result set.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New returns an empty table with the given columns. When a name is
// repeated, lookups by name resolve to its first position.
func New(columns ...string) *Table {
	t := &Table{
		columns: slices.Clone(columns),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	return t
}

// AppendRow adds a row. The number of values must match the number of
// columns.
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	t.rows = append(t.rows, slices.Clone(values))
	return nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// HasColumn reports whether the table has a column named name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []any {
	return slices.Clone(t.rows[i])
}

// Value returns the cell at row i in the named column.
func (t *Table) Value(i int, column string) (any, bool) {
	pos, ok := t.index[column]
	if !ok {
		return nil, false
	}
	return t.rows[i][pos], true
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]any, bool) {
	pos, ok := t.index[name]
	if !ok {
		return nil, false
	}
	values := make([]any, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[pos]
	}
	return values, true
}

// Partition splits names into those the table has and those it does
// not, preserving the order of names in both.
func (t *Table) Partition(names []string) (present, missing []string) {
	for _, name := range names {
		if t.HasColumn(name) {
			present = append(present, name)
		} else {
			missing = append(missing, name)
		}
	}
	return present, missing
}

// Select returns a projection holding only the requested columns that
// exist, in the requested order, along with the names that did not
// exist. An empty projection keeps the row count.
func (t *Table) Select(columns []string) (*Table, []string) {
	present, missing := t.Partition(columns)

	positions := make([]int, len(present))
	for i, name := range present {
		positions[i] = t.index[name]
	}

	out := New(present...)
	out.rows = make([][]any, len(t.rows))
	for i, row := range t.rows {
		projected := make([]any, len(positions))
		for j, pos := range positions {
			projected[j] = row[pos]
		}
		out.rows[i] = projected
	}

	return out, missing
}

// DropMissing returns a table without the rows that have a missing
// value in any of the given columns. It also returns how many rows were
// dropped and which of the given columns do not exist. Unknown columns
// are ignored.
func (t *Table) DropMissing(columns []string) (*Table, int, []string) {
	present, missing := t.Partition(columns)

	positions := make([]int, len(present))
	for i, name := range present {
		positions[i] = t.index[name]
	}

	out := New(t.columns...)
	out.rows = make([][]any, 0, len(t.rows))
	for _, row := range t.rows {
		if hasMissing(row, positions) {
			continue
		}
		out.rows = append(out.rows, row)
	}

	return out, len(t.rows) - len(out.rows), missing
}

func hasMissing(row []any, positions []int) bool {
	for _, pos := range positions {
		if IsMissing(row[pos]) {
			return true
		}
	}
	return false
}

// IsMissing reports whether v counts as a missing value.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	case *float64:
		return x == nil || math.IsNaN(*x)
	}
	return false
}

// Concat stacks tables vertically in argument order.
//
// Columns are aligned by name: the result has the union of all columns
// in order of first appearance, and cells a table has no column for are
// nil. Rows are renumbered contiguously. Nil tables are skipped.
func Concat(tables ...*Table) *Table {
	var columns []string
	seen := make(map[string]bool)
	total := 0
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, name := range t.columns {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
		total += len(t.rows)
	}

	out := New(columns...)
	out.rows = make([][]any, 0, total)
	for _, t := range tables {
		if t == nil {
			continue
		}
		if slices.Equal(t.columns, columns) {
			out.rows = append(out.rows, t.rows...)
			continue
		}
		for _, row := range t.rows {
			aligned := make([]any, len(columns))
			for pos, name := range t.columns {
				if t.index[name] != pos {
					// duplicate name; the first occurrence wins
					continue
				}
				aligned[out.index[name]] = row[pos]
			}
			out.rows = append(out.rows, aligned)
		}
	}

	return out
}
