// Package boxdraw renders simple column-aligned tables using box-drawing
// characters, for lockman's debug introspection output.
package boxdraw

import "strings"

// Width controls how generously a Table's columns are padded.
type Width int

const (
	// Default caps each column at a reasonable width, truncating with an
	// ellipsis.
	Default Width = iota
	// Compact removes the cap entirely; columns are exactly as wide as
	// their widest cell.
	Compact
	// Detailed widens the Default cap to 64, for payloads whose cells tend
	// to run long; cells past that width are still truncated.
	Detailed
)

func (w Width) maxCol() int {
	switch w {
	case Compact:
		return 0
	case Detailed:
		return 64
	default:
		return 32
	}
}

// Table is a header row plus body rows, all cells already stringified.
type Table struct {
	Headers []string
	Rows    [][]string
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

// Render draws t as a bordered, box-drawing table under the given Width
// policy. An empty table (no rows) still renders header and border.
func (t Table) Render(width Width) string {
	max := width.maxCol()
	cols := len(t.Headers)
	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	cells := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			v := ""
			if c < len(row) {
				v = row[c]
			}
			v = truncate(v, max)
			cells[r][c] = v
			if len(v) > widths[c] {
				widths[c] = len(v)
			}
		}
	}

	var b strings.Builder
	writeBorder(&b, widths, "┌", "┬", "┐")
	writeRow(&b, t.Headers, widths)
	writeBorder(&b, widths, "├", "┼", "┤")
	for _, row := range cells {
		writeRow(&b, row, widths)
	}
	writeBorder(&b, widths, "└", "┴", "┘")
	return b.String()
}

func writeBorder(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat("─", w+2))
	}
	b.WriteString(right)
	b.WriteByte('\n')
}

func writeRow(b *strings.Builder, row []string, widths []int) {
	b.WriteString("│")
	for i, w := range widths {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		b.WriteString(" ")
		b.WriteString(v)
		b.WriteString(strings.Repeat(" ", w-len(v)))
		b.WriteString(" │")
	}
	b.WriteByte('\n')
}
