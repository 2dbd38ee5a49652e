package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table lays out rows in columns aligned by display width. Cells in the
// last column are never padded.
type Table struct {
	header []string
	rows   [][]string
	max    int
}

// NewTable starts a table with the given header. maxWidth caps every column
// but the last; zero means unlimited.
func NewTable(maxWidth int, header ...string) *Table {
	return &Table{header: header, max: maxWidth}
}

// Add appends a row. Missing cells are empty.
func (t *Table) Add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// String renders the table with two spaces between columns.
func (t *Table) String() string {
	cols := len(t.header)
	for _, r := range t.rows {
		cols = max(cols, len(r))
	}
	widths := make([]int, cols)
	measure := func(row []string) {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(t.fit(c, i, cols)))
		}
	}
	measure(t.header)
	for _, r := range t.rows {
		measure(r)
	}

	var b strings.Builder
	write := func(row []string) {
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = t.fit(row[i], i, cols)
			}
			if i == cols-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}
	if len(t.header) > 0 {
		write(t.header)
	}
	for _, r := range t.rows {
		write(r)
	}
	return b.String()
}

func (t *Table) fit(cell string, col, cols int) string {
	if col == cols-1 {
		return cell
	}
	return truncate(cell, t.max)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
