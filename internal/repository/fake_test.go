package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/statcast-tools/baseball-utilities/internal/database"
)

// fakeRows is an in-memory pgx.Rows.
type fakeRows struct {
	fields []pgconn.FieldDescription
	data   [][]any
	pos    int
	err    error
	closed bool
}

func newFakeRows(columns []string, data ...[]any) *fakeRows {
	fields := make([]pgconn.FieldDescription, len(columns))
	for i, name := range columns {
		fields[i] = pgconn.FieldDescription{Name: name}
	}
	return &fakeRows{fields: fields, data: data}
}

func (r *fakeRows) Close() { r.closed = true }
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(r.data)))
}
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}
func (r *fakeRows) Scan(...any) error      { return errors.New("fakeRows: Scan not supported") }
func (r *fakeRows) Values() ([]any, error) { return slices.Clone(r.data[r.pos-1]), nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

type copyCall struct {
	table   pgx.Identifier
	columns []string
	rows    [][]any
}

// fakeConn records every statement it receives.
type fakeConn struct {
	respond func(sql string) (*fakeRows, error)
	execErr error

	queries []string
	execs   []string
	copies  []copyCall
	rows    []*fakeRows
	closed  bool
}

func (c *fakeConn) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	c.queries = append(c.queries, sql)
	rows, err := c.respond(sql)
	if err != nil {
		return nil, err
	}
	c.rows = append(c.rows, rows)
	return rows, nil
}

func (c *fakeConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	c.execs = append(c.execs, sql)
	if c.execErr != nil {
		return pgconn.CommandTag{}, c.execErr
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (c *fakeConn) CopyFrom(_ context.Context, tableName pgx.Identifier, columnNames []string, src pgx.CopyFromSource) (int64, error) {
	call := copyCall{table: tableName, columns: columnNames}
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		call.rows = append(call.rows, values)
	}
	c.copies = append(c.copies, call)
	return int64(len(call.rows)), src.Err()
}

func (c *fakeConn) Close(context.Context) error {
	c.closed = true
	return nil
}

// fakeConnector hands out a new fakeConn per Connect call.
type fakeConnector struct {
	mu         sync.Mutex
	respond    func(sql string) (*fakeRows, error)
	execErr    error
	connectErr error
	conns      []*fakeConn
}

func (f *fakeConnector) Connect(context.Context) (database.Conn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.connectErr != nil {
		return nil, f.connectErr
	}
	conn := &fakeConn{respond: f.respond, execErr: f.execErr}
	f.conns = append(f.conns, conn)
	return conn, nil
}

func (f *fakeConnector) queries() []string {
	var out []string
	for _, c := range f.conns {
		out = append(out, c.queries...)
	}
	return out
}
