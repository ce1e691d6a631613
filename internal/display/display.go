// Package display prints tables for interactive inspection.
//
// Formatting settings live in a Formatter value rather than in process
// state, so two callers can print with different settings at once.
package display

import "sync"

// Unlimited disables a limit.
const Unlimited = 0

// Options controls how tables are printed. Zero means unlimited for
// every limit.
type Options struct {
	// MaxRows is the number of rows printed before the middle of the
	// table is elided.
	MaxRows int

	// MaxColumns is the number of columns printed before the middle
	// columns are elided.
	MaxColumns int

	// Width is the total character width the printed columns may take.
	Width int

	// MaxColWidth truncates longer cells with "...".
	MaxColWidth int

	// HumanizeHeaders title-cases snake_case headers ("bat_speed" -> "Bat Speed").
	HumanizeHeaders bool
}

// Defaults returns the default settings, matching pandas.
func Defaults() Options {
	return Options{
		MaxRows:     60,
		MaxColumns:  20,
		Width:       80,
		MaxColWidth: 50,
	}
}

// ShowAll returns the inspection preset: up to 1000 rows and no column,
// width or cell limits.
func ShowAll() Options {
	return Options{
		MaxRows:     1000,
		MaxColumns:  Unlimited,
		Width:       Unlimited,
		MaxColWidth: Unlimited,
	}
}

// Formatter holds the current settings. It is safe for concurrent use;
// With and WithAll never change the shared settings.
type Formatter struct {
	mu   sync.RWMutex
	opts Options
}

// NewFormatter returns a Formatter with the default settings.
func NewFormatter() *Formatter {
	return &Formatter{opts: Defaults()}
}

// Options returns the current settings.
func (f *Formatter) Options() Options {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts
}

// Set replaces the current settings.
func (f *Formatter) Set(opts Options) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts = opts
}

// SetAll applies the ShowAll preset to the four limits. HumanizeHeaders
// is left alone.
func (f *Formatter) SetAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts = withLimits(f.opts, ShowAll())
}

// Reset restores the four limits to their defaults.
func (f *Formatter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts = withLimits(f.opts, Defaults())
}

// With runs fn with a scoped Formatter using opts. The receiver's
// settings are untouched, so overlapping scopes cannot leave it in a
// state neither caller asked for.
func (f *Formatter) With(opts Options, fn func(scoped *Formatter) error) error {
	return fn(&Formatter{opts: opts})
}

// WithAll runs fn with a scoped Formatter carrying the ShowAll limits.
func (f *Formatter) WithAll(fn func(scoped *Formatter) error) error {
	return f.With(withLimits(f.Options(), ShowAll()), fn)
}

func withLimits(opts, limits Options) Options {
	opts.MaxRows = limits.MaxRows
	opts.MaxColumns = limits.MaxColumns
	opts.Width = limits.Width
	opts.MaxColWidth = limits.MaxColWidth
	return opts
}
