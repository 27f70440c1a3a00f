package tablegrid

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// CellLayout describes one cell anchor in a layout snapshot.
type CellLayout struct {
	// Row and Col are the cell's logical start coordinates.
	Row int `json:"row"`
	Col int `json:"col"`
	// RowSpan and ColSpan are the cell's span dimensions.
	RowSpan int `json:"row_span"`
	ColSpan int `json:"col_span"`
	// Text is the cell content rendered as plain text, when the tree
	// can provide it.
	Text string `json:"text,omitempty"`
}

// RowLayout describes one logical row in a layout snapshot.
type RowLayout struct {
	Index int `json:"index"`
	// Cells lists the cells anchored in this row, in column order.
	// Cells extending into the row from above are not repeated.
	Cells []CellLayout `json:"cells"`
}

// Layout is a plain-data snapshot of the logical grid, detached from
// the underlying tree. Two snapshots of structurally identical grids
// compare equal with reflect.DeepEqual.
type Layout struct {
	Columns int         `json:"columns"`
	Rows    []RowLayout `json:"rows"`
}

// Layout captures the current logical grid as plain data.
func (g *Grid) Layout() Layout {
	l := Layout{Columns: g.ColCount()}
	texter, _ := g.tree.(ContentTexter)

	for _, row := range g.rows {
		rl := RowLayout{Index: row.index, Cells: []CellLayout{}}
		for col, cell := range row.columns {
			if cell == nil || cell.startRow != row.index || cell.startCol != col {
				continue
			}
			cl := CellLayout{
				Row:     cell.startRow,
				Col:     cell.startCol,
				RowSpan: cell.rowSpan,
				ColSpan: cell.colSpan,
			}
			if texter != nil {
				cl.Text = texter.ContentText(cell.node)
			} else if c := g.tree.Content(cell.node); c != nil {
				cl.Text = fmt.Sprint(c)
			}
			rl.Cells = append(rl.Cells, cl)
		}
		l.Rows = append(l.Rows, rl)
	}
	return l
}

// Clone returns a deep copy of the snapshot.
func (l Layout) Clone() Layout {
	var out Layout
	// Layout is plain exported data; the copy cannot fail on it.
	_ = deepcopy.Copy(&out, &l)
	return out
}

// CellCount returns the number of distinct cells in the snapshot.
func (l Layout) CellCount() int {
	n := 0
	for _, r := range l.Rows {
		n += len(r.Cells)
	}
	return n
}
