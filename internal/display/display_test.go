package display

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statcast-tools/baseball-utilities/internal/table"
)

func TestSetAllThenReset(t *testing.T) {
	f := NewFormatter()
	before := f.Options()

	f.SetAll()
	assert.Equal(t, ShowAll(), f.Options())

	f.Reset()
	assert.Equal(t, before, f.Options())
	assert.Equal(t, Defaults(), f.Options())
}

func TestSetAllKeepsHumanizeHeaders(t *testing.T) {
	f := NewFormatter()
	opts := f.Options()
	opts.HumanizeHeaders = true
	f.Set(opts)

	f.SetAll()
	assert.True(t, f.Options().HumanizeHeaders)
	assert.Equal(t, 1000, f.Options().MaxRows)

	f.Reset()
	assert.True(t, f.Options().HumanizeHeaders)
	assert.Equal(t, 60, f.Options().MaxRows)
}

func TestWithScopesSettings(t *testing.T) {
	f := NewFormatter()
	f.Set(Options{MaxRows: 60, HumanizeHeaders: true})
	boom := errors.New("boom")

	err := f.WithAll(func(scoped *Formatter) error {
		assert.Equal(t, withLimits(Options{HumanizeHeaders: true}, ShowAll()), scoped.Options())
		assert.Equal(t, 60, f.Options().MaxRows)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 60, f.Options().MaxRows)

	assert.Panics(t, func() {
		_ = f.With(Options{MaxRows: 5}, func(*Formatter) error {
			panic("render blew up")
		})
	})
	assert.Equal(t, 60, f.Options().MaxRows)
}

func TestOverlappingScopesLeaveDefaults(t *testing.T) {
	f := NewFormatter()

	aEntered := make(chan struct{})
	bEntered := make(chan struct{})
	aDone := make(chan struct{})
	bSaw := make(chan Options, 1)

	go func() {
		defer close(aDone)
		_ = f.WithAll(func(*Formatter) error {
			close(aEntered)
			<-bEntered
			return nil
		})
	}()

	<-aEntered
	err := f.With(Options{MaxRows: 5}, func(scoped *Formatter) error {
		close(bEntered)
		<-aDone
		bSaw <- scoped.Options()
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, Options{MaxRows: 5}, <-bSaw)
	assert.Equal(t, Defaults(), f.Options())
}

func TestScopedRender(t *testing.T) {
	f := NewFormatter()
	tbl := pitchTypes(t, 8)

	var buf bytes.Buffer
	require.NoError(t, f.With(Options{MaxRows: 2}, func(scoped *Formatter) error {
		return scoped.Render(&buf, tbl)
	}))
	assert.Contains(t, buf.String(), "...")
	assert.Contains(t, buf.String(), "[8 rows x 2 columns]")
	assert.Equal(t, Defaults(), f.Options())
}

func pitchTypes(t *testing.T, n int) *table.Table {
	t.Helper()

	names := []string{"FF", "SL", "CH", "CU", "SI", "FC", "KC", "FS"}
	tbl := table.New("pitch_type", "release_speed")
	for i := 0; i < n; i++ {
		require.NoError(t, tbl.AppendRow(names[i], 90.5+float64(i)))
	}
	return tbl
}

func TestRenderSmallTable(t *testing.T) {
	tbl := table.New("player_name", "bat_speed", "game_date")
	require.NoError(t, tbl.AppendRow("Judge, Aaron", 75.25, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, tbl.AppendRow("Soto, Juan", math.NaN(), nil))

	var buf bytes.Buffer
	require.NoError(t, NewFormatter().Render(&buf, tbl))

	out := buf.String()
	assert.Contains(t, out, "player_name")
	assert.Contains(t, out, "Judge, Aaron")
	assert.Contains(t, out, "75.25")
	assert.Contains(t, out, "2024-06-01")
	assert.Contains(t, out, "NaN")
	assert.NotContains(t, out, "rows x")
}

func TestRenderElidesRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, pitchTypes(t, 8), Options{MaxRows: 4}))

	out := buf.String()
	for _, shown := range []string{"FF", "SL", "KC", "FS"} {
		assert.Contains(t, out, shown)
	}
	for _, hidden := range []string{"CH", "CU", "SI", "FC"} {
		assert.NotContains(t, out, hidden)
	}
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "[8 rows x 2 columns]")
}

func TestRenderShowAllPrintsEverything(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, pitchTypes(t, 8), ShowAll()))

	out := buf.String()
	for _, shown := range []string{"FF", "SL", "CH", "CU", "SI", "FC", "KC", "FS"} {
		assert.Contains(t, out, shown)
	}
	assert.NotContains(t, out, "rows x")
}

func TestRenderElidesColumns(t *testing.T) {
	tbl := table.New("a_col", "b_col", "c_col", "d_col", "e_col")
	require.NoError(t, tbl.AppendRow(1, 2, 3, 4, 5))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tbl, Options{MaxColumns: 2}))

	out := buf.String()
	assert.Contains(t, out, "a_col")
	assert.Contains(t, out, "e_col")
	assert.NotContains(t, out, "c_col")
	assert.Contains(t, out, "[1 rows x 5 columns]")
}

func TestRenderWidth(t *testing.T) {
	tbl := table.New("description", "des", "pitch_name")
	require.NoError(t, tbl.AppendRow("hit_into_play", "Aaron Judge homers (58) on a fly ball to left field.", "4-Seam Fastball"))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tbl, Options{Width: 40}))

	out := buf.String()
	assert.Contains(t, out, "description")
	assert.NotContains(t, out, "pitch_name")
	assert.Contains(t, out, "[1 rows x 3 columns]")
}

func TestRenderMaxColWidth(t *testing.T) {
	tbl := table.New("des")
	require.NoError(t, tbl.AppendRow("Aaron Judge homers (58) on a fly ball to left field."))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tbl, Options{MaxColWidth: 14}))

	out := buf.String()
	assert.Contains(t, out, "Aaron Judge...")
	assert.NotContains(t, out, "homers")
}

func TestRenderHumanizeHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, pitchTypes(t, 1), Options{HumanizeHeaders: true}))

	out := buf.String()
	assert.Contains(t, out, "Pitch Type")
	assert.Contains(t, out, "Release Speed")
}

func TestRenderNilTable(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, nil, Defaults()))
}

func TestPick(t *testing.T) {
	positions, elided := pick(3, 0)
	assert.Equal(t, []int{0, 1, 2}, positions)
	assert.False(t, elided)

	positions, elided = pick(10, 5)
	assert.Equal(t, []int{0, 1, 2, -1, 8, 9}, positions)
	assert.True(t, elided)

	positions, elided = pick(10, 1)
	assert.Equal(t, []int{0, -1}, positions)
	assert.True(t, elided)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NaN", FormatValue(nil))
	assert.Equal(t, "NaN", FormatValue(math.NaN()))
	assert.Equal(t, "72.5", FormatValue(72.5))
	assert.Equal(t, "2024", FormatValue(int64(2024)))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "2024-06-01 19:05:00", FormatValue(time.Date(2024, 6, 1, 19, 5, 0, 0, time.UTC)))
	assert.True(t, strings.HasPrefix(FormatValue("single"), "single"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "strikeout", truncate("strikeout", 0))
	assert.Equal(t, "strikeout", truncate("strikeout", 9))
	assert.Equal(t, "stri...", truncate("strikeout", 7))
	assert.Equal(t, "st", truncate("strikeout", 2))
}
