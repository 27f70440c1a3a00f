package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid"
)

var (
	anchorStyle = lipgloss.NewStyle()
	spanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	coverStyle  = lipgloss.NewStyle().Faint(true)
)

// renderGrid prints one line per logical row with one fixed-width slot
// per logical column. A spanned cell's text appears in its anchor slot;
// the slots it covers show a continuation marker pointing at the
// anchor.
func renderGrid(g *tablegrid.Grid) string {
	cols := g.ColCount()
	widths := make([]int, cols)
	for _, row := range g.Rows() {
		for col, cell := range row.Columns() {
			if cell == nil || cell.StartRow() != row.Index() || cell.StartCol() != col {
				continue
			}
			if w := lipgloss.Width(firstLine(cellText(g, cell))); w > widths[col] {
				widths[col] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 1 {
			widths[i] = 1
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d x %d\n", g.RowCount(), cols)
	for _, row := range g.Rows() {
		for col := 0; col < cols; col++ {
			if col > 0 {
				sb.WriteString("  ")
			}
			cell := row.Cell(col)
			switch {
			case cell == nil:
				sb.WriteString(pad("", widths[col]))
			case cell.StartRow() == row.Index() && cell.StartCol() == col:
				style := anchorStyle
				if cell.RowSpan() > 1 || cell.ColSpan() > 1 {
					style = spanStyle
				}
				sb.WriteString(style.Render(pad(firstLine(cellText(g, cell)), widths[col])))
			case cell.StartRow() < row.Index() && cell.StartCol() == col:
				sb.WriteString(coverStyle.Render(pad("^", widths[col])))
			default:
				sb.WriteString(coverStyle.Render(pad("<", widths[col])))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func cellText(g *tablegrid.Grid, cell *tablegrid.Cell) string {
	if texter, ok := g.Tree().(tablegrid.ContentTexter); ok {
		return texter.ContentText(cell.Node())
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// pad right-fills s with spaces up to display width w. Width is
// measured in terminal cells, not bytes, so wide runes line up.
func pad(s string, w int) string {
	d := w - lipgloss.Width(s)
	if d <= 0 {
		return s
	}
	return s + strings.Repeat(" ", d)
}
