// Package baseball queries a Postgres store of Statcast pitch-by-pitch
// data and tidies the results for analysis.
//
//	client, err := baseball.New()
//	if err != nil { ... }
//	swings, err := client.GetSwingData(ctx, []int{2023, 2024})
//	swings = client.RemoveNaN(swings, []string{"bat_speed", "swing_length"})
//	client.SetDisplayAll()
//	client.Print(os.Stdout, swings)
//
// The connection target is read from STATCAST_* environment variables
// (or a .env file): STATCAST_DATABASE_HOST, _PORT, _USER, _PASSWORD,
// _NAME and optionally _SSL_MODE and _CONNECT_TIMEOUT.
package baseball

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/statcast-tools/baseball-utilities/internal/config"
	"github.com/statcast-tools/baseball-utilities/internal/database"
	"github.com/statcast-tools/baseball-utilities/internal/display"
	"github.com/statcast-tools/baseball-utilities/internal/logger"
	"github.com/statcast-tools/baseball-utilities/internal/repository"
	"github.com/statcast-tools/baseball-utilities/internal/server"
	"github.com/statcast-tools/baseball-utilities/internal/table"
)

type (
	// Table is an in-memory query result.
	Table = table.Table
	// Conn is a live database connection. Close it when done.
	Conn = database.Conn
	// Config is the connection and logging configuration.
	Config = config.Config
	// DatabaseConfig is the connection target.
	DatabaseConfig = config.DatabaseConfig
	// LoggingConfig controls log level, format and slow-query warnings.
	LoggingConfig = config.LoggingConfig
	// DisplayOptions controls how Print lays tables out.
	DisplayOptions = display.Options
	// Formatter holds display settings.
	Formatter = display.Formatter
)

// SwingFilter is the extra condition GetSwingData passes to QueryYear.
const SwingFilter = repository.SwingFilter

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return table.New(columns...)
}

// Concat stacks tables in order, aligning columns by name.
func Concat(tables ...*Table) *Table {
	return table.Concat(tables...)
}

// Client exposes the query and clean-up helpers.
type Client struct {
	server *server.Server
}

// New loads configuration from the environment and builds a Client
// logging to stderr.
func New() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging)
	return NewWithConfig(cfg, &log)
}

// NewWithConfig builds a Client from explicit configuration. A nil or
// partial Logging block is filled with the defaults New would use.
func NewWithConfig(cfg *Config, log *zerolog.Logger) (*Client, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s, err := server.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Client{server: s}, nil
}

func newWithServer(s *server.Server) *Client {
	return &Client{server: s}
}

// GetConnection opens a new connection to the configured database.
func (c *Client) GetConnection(ctx context.Context) (Conn, error) {
	return c.server.Repositories.Statcast.GetConnection(ctx)
}

// QueryYear returns the statcast_all rows of year. whereClause, when not
// empty, is appended verbatim and should start with AND.
func (c *Client) QueryYear(ctx context.Context, year int, whereClause string) (*Table, error) {
	return c.server.Repositories.Statcast.QueryYear(ctx, year, whereClause)
}

// GetPBPData returns the rows of every year, in the given order.
func (c *Client) GetPBPData(ctx context.Context, years []int) (*Table, error) {
	return c.server.Repositories.Statcast.GetPBPData(ctx, years)
}

// GetSwingData returns the rows of every year that have bat speed and
// swing length.
func (c *Client) GetSwingData(ctx context.Context, years []int) (*Table, error) {
	return c.server.Repositories.Statcast.GetSwingData(ctx, years)
}

// GetDescriptionData returns the rows of year with a non-null event.
func (c *Client) GetDescriptionData(ctx context.Context, year int) (*Table, error) {
	return c.server.Repositories.Statcast.GetDescriptionData(ctx, year)
}

// GetTable returns every row of tableName.
func (c *Client) GetTable(ctx context.Context, tableName string) (*Table, error) {
	return c.server.Repositories.Statcast.GetTable(ctx, tableName)
}

// UploadTable replaces tableName with t.
func (c *Client) UploadTable(ctx context.Context, tableName string, t *Table) (int64, error) {
	return c.server.Repositories.Statcast.UploadTable(ctx, tableName, t)
}

// RemoveColumns keeps only columnsToKeep, warning about unknown names.
func (c *Client) RemoveColumns(t *Table, columnsToKeep []string) *Table {
	return c.server.Services.Preprocess.RemoveColumns(t, columnsToKeep)
}

// RemoveNaN drops rows with missing values in naColumns.
func (c *Client) RemoveNaN(t *Table, naColumns []string) *Table {
	return c.server.Services.Preprocess.RemoveNaN(t, naColumns)
}

// SetDisplayAll switches Print to show up to 1000 rows with no column,
// width or cell limits.
func (c *Client) SetDisplayAll() {
	c.server.Display.SetAll()
}

// ResetDisplayOptions restores the default display limits.
func (c *Client) ResetDisplayOptions() {
	c.server.Display.Reset()
}

// Display returns the client's formatter for finer control, including
// the scoped With and WithAll helpers.
func (c *Client) Display() *Formatter {
	return c.server.Display
}

// Print writes t to w using the client's display settings.
func (c *Client) Print(w io.Writer, t *Table) error {
	return c.server.Display.Render(w, t)
}
