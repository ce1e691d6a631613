package display

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/statcast-tools/baseball-utilities/internal/table"
)

const ellipsis = "..."

// Render prints t to w with the current settings.
func (f *Formatter) Render(w io.Writer, t *table.Table) error {
	return Render(w, t, f.Options())
}

// Render prints t to w.
//
// The first column is the row index. Rows and columns past the limits
// are elided in the middle, columns that do not fit in Width are cut
// from the right, and a "[rows x columns]" caption is added whenever
// anything was left out.
func Render(w io.Writer, t *table.Table, opts Options) error {
	if t == nil {
		return errors.New("display: nil table")
	}

	rowPositions, rowsElided := pick(t.NumRows(), opts.MaxRows)
	colPositions, colsElided := pick(t.NumColumns(), opts.MaxColumns)

	names := t.Columns()
	header := make([]string, 0, len(colPositions)+1)
	header = append(header, "")
	for _, pos := range colPositions {
		if pos < 0 {
			header = append(header, ellipsis)
			continue
		}
		header = append(header, headerName(names[pos], opts))
	}

	body := make([][]string, 0, len(rowPositions))
	for _, r := range rowPositions {
		line := make([]string, 0, len(header))
		if r < 0 {
			for range header {
				line = append(line, ellipsis)
			}
			body = append(body, line)
			continue
		}

		row := t.Row(r)
		line = append(line, strconv.Itoa(r))
		for _, pos := range colPositions {
			if pos < 0 {
				line = append(line, ellipsis)
				continue
			}
			line = append(line, truncate(FormatValue(row[pos]), opts.MaxColWidth))
		}
		body = append(body, line)
	}

	widthElided := false
	if keep := fit(header, body, opts.Width); keep < len(header) {
		widthElided = true
		header = append(header[:keep:keep], ellipsis)
		for i, line := range body {
			body[i] = append(line[:keep:keep], ellipsis)
		}
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	tw.AppendBulk(body)
	if rowsElided || colsElided || widthElided {
		tw.SetCaption(true, fmt.Sprintf("[%d rows x %d columns]", t.NumRows(), t.NumColumns()))
	}
	tw.Render()

	return nil
}

// pick returns the positions to print out of n, with -1 standing for
// the elided middle. limit <= 0 keeps everything.
func pick(n, limit int) ([]int, bool) {
	if limit <= 0 || n <= limit {
		positions := make([]int, n)
		for i := range positions {
			positions[i] = i
		}
		return positions, false
	}

	head := (limit + 1) / 2
	tail := limit / 2

	positions := make([]int, 0, limit+1)
	for i := 0; i < head; i++ {
		positions = append(positions, i)
	}
	positions = append(positions, -1)
	for i := n - tail; i < n; i++ {
		positions = append(positions, i)
	}
	return positions, true
}

// fit returns how many leading columns fit in width, counting three
// characters of padding and separator per column. The index column and
// the first data column are always kept.
func fit(header []string, body [][]string, width int) int {
	if width <= 0 {
		return len(header)
	}

	used := 0
	for col := range header {
		colWidth := utf8.RuneCountInString(header[col])
		for _, line := range body {
			colWidth = max(colWidth, utf8.RuneCountInString(line[col]))
		}
		used += colWidth + 3

		if used > width && col >= 2 {
			return col
		}
	}
	return len(header)
}

func headerName(name string, opts Options) string {
	if !opts.HumanizeHeaders {
		return name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// FormatValue renders one cell. Missing values print as NaN.
func FormatValue(v any) string {
	if table.IsMissing(v) {
		return "NaN"
	}

	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	default:
		return fmt.Sprint(v)
	}
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
