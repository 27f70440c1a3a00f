package tablegrid

// Cell wraps one underlying cell node together with its span dimensions
// and the logical grid rectangle it occupies. A spanned cell is shared:
// every row/column slot it covers references the same Cell.
type Cell struct {
	tree TableTree
	node Node

	rowSpan int
	colSpan int

	startRow int
	startCol int
	endRow   int
	endCol   int
}

// newCell reads the node's spans and derives the end coordinates in one
// step, so a Cell with stale derived fields is never observable.
func newCell(tree TableTree, node Node, row, col int) *Cell {
	c := &Cell{
		tree:     tree,
		node:     node,
		rowSpan:  tree.Span(node, AxisRow),
		colSpan:  tree.Span(node, AxisCol),
		startRow: row,
		startCol: col,
	}
	c.endRow = row + c.rowSpan - 1
	c.endCol = col + c.colSpan - 1
	return c
}

// Node returns the underlying cell node.
func (c *Cell) Node() Node { return c.node }

// RowSpan returns the number of logical rows the cell occupies.
func (c *Cell) RowSpan() int { return c.rowSpan }

// ColSpan returns the number of logical columns the cell occupies.
func (c *Cell) ColSpan() int { return c.colSpan }

// StartRow returns the first logical row the cell occupies.
func (c *Cell) StartRow() int { return c.startRow }

// StartCol returns the first logical column the cell occupies.
func (c *Cell) StartCol() int { return c.startCol }

// EndRow returns the last logical row the cell occupies.
func (c *Cell) EndRow() int { return c.endRow }

// EndCol returns the last logical column the cell occupies.
func (c *Cell) EndCol() int { return c.endCol }

// setRowSpan writes the span through to the underlying node and
// recomputes the end coordinate in the same step.
func (c *Cell) setRowSpan(n int) {
	c.rowSpan = n
	c.endRow = c.startRow + n - 1
	c.tree.SetSpan(c.node, AxisRow, n)
}

func (c *Cell) setColSpan(n int) {
	c.colSpan = n
	c.endCol = c.startCol + n - 1
	c.tree.SetSpan(c.node, AxisCol, n)
}

// Row wraps one underlying row node and the cells occupying its logical
// column slots. Columns is sparse: a nil entry is a slot not covered by
// any cell.
type Row struct {
	node    Node
	index   int
	columns []*Cell
}

// Node returns the underlying row node, or nil for a row reached only
// through an overhanging row span past the last physical row.
func (r *Row) Node() Node { return r.node }

// Index returns the logical row number.
func (r *Row) Index() int { return r.index }

// Columns returns the row's logical column slots in order. Entries may
// be nil and a spanned cell appears once per slot it covers.
func (r *Row) Columns() []*Cell { return r.columns }

// Cell returns the cell occupying logical column col, or nil if the
// slot is empty or out of range.
func (r *Row) Cell(col int) *Cell {
	if col < 0 || col >= len(r.columns) {
		return nil
	}
	return r.columns[col]
}

// grow extends the column slice with empty slots up to length n.
func (r *Row) grow(n int) {
	for len(r.columns) < n {
		r.columns = append(r.columns, nil)
	}
}
