// Package tablegrid maintains a logical row/column grid model over a
// tree of row and cell nodes in which cells may span multiple rows or
// columns, and supports merging a rectangular region of cells into one
// and splitting a spanned cell back into unit cells.
//
// The grid translates between physical node order and logical grid
// coordinates. It is rebuilt in full from the underlying tree after
// every structural edit, so the public state is always consistent when
// a call returns. A Grid is not safe for concurrent use.
package tablegrid

// Grid is the table model: the full set of rows and cells built over a
// TableTree, addressed by logical coordinates.
type Grid struct {
	tree TableTree
	rows []*Row

	// cells is the arena of all Cell records built by the last
	// Refresh, in physical (row-major) discovery order. Rows reference
	// into it; a spanned cell has one record here however many slots
	// it covers.
	cells []*Cell
}

// NewGrid builds a grid model over tree. The model reflects the tree
// state at call time; call Refresh after mutating the tree outside of
// MergeCells/SplitCell.
func NewGrid(tree TableTree) *Grid {
	g := &Grid{tree: tree}
	g.Refresh()
	return g
}

// Tree returns the underlying tree the grid was built over.
func (g *Grid) Tree() TableTree { return g.tree }

// Rows returns the logical rows in order.
func (g *Grid) Rows() []*Row { return g.rows }

// Cells returns every distinct cell of the grid in physical (row-major
// discovery) order. A spanned cell appears once.
func (g *Grid) Cells() []*Cell { return g.cells }

// RowCount returns the number of logical rows.
func (g *Grid) RowCount() int { return len(g.rows) }

// ColCount returns the width of the widest logical row.
func (g *Grid) ColCount() int {
	n := 0
	for _, r := range g.rows {
		if len(r.columns) > n {
			n = len(r.columns)
		}
	}
	return n
}

// CellAt returns the cell occupying the logical position, or nil if the
// position is out of range or not covered by any cell.
func (g *Grid) CellAt(row, col int) *Cell {
	if row < 0 || row >= len(g.rows) {
		return nil
	}
	return g.rows[row].Cell(col)
}

// Refresh rebuilds the whole model from the current state of the
// underlying tree. It is safe to call any number of times; each call
// discards every Row and Cell from the previous build.
func (g *Grid) Refresh() {
	rowNodes := g.tree.RowNodes()

	rows := make([]*Row, 0, len(rowNodes))
	var cells []*Cell

	// ensureRow creates rows up to and including index i. A row index
	// can be reached through an overhanging row span before its own
	// physical row node is processed; it is bound to the physical node
	// at that index when one exists.
	ensureRow := func(i int) *Row {
		for len(rows) <= i {
			var n Node
			if len(rows) < len(rowNodes) {
				n = rowNodes[len(rows)]
			}
			rows = append(rows, &Row{node: n, index: len(rows)})
		}
		return rows[i]
	}

	for rowNum, rowNode := range rowNodes {
		row := ensureRow(rowNum)
		columnNum := 0
		for _, cellNode := range g.tree.CellNodes(rowNode) {
			// Skip slots already claimed by a row span from an
			// earlier physical row.
			for columnNum < len(row.columns) && row.columns[columnNum] != nil {
				columnNum++
			}

			cell := newCell(g.tree, cellNode, rowNum, columnNum)
			cells = append(cells, cell)

			for i := 0; i < cell.rowSpan; i++ {
				spanned := ensureRow(rowNum + i)
				spanned.grow(columnNum + cell.colSpan)
				for j := 0; j < cell.colSpan; j++ {
					spanned.columns[columnNum+j] = cell
				}
			}
			columnNum += cell.colSpan
		}
	}

	// A trailing row with no cells still gets an entry.
	if len(rowNodes) > 0 {
		ensureRow(len(rowNodes) - 1)
	}

	g.rows = rows
	g.cells = cells
}

// MergeCells merges every cell inside the logical rectangle
// [startRow..endRow] x [startCol..endCol] into a single cell occupying
// exactly that rectangle. The first cell in row-major order keeps its
// node and absorbs the content of the others, whose nodes are removed.
//
// The region is validated in full before any node is touched: a
// single-cell region, an out-of-range position, or a cell whose span
// crosses the rectangle boundary fails with a RegionError and leaves
// the table unchanged.
func (g *Grid) MergeCells(startRow, startCol, endRow, endCol int) error {
	if startRow == endRow && startCol == endCol {
		return regionError("merge", startRow, startCol, ErrNothingToMerge)
	}
	if startRow > endRow || startCol > endCol {
		return regionError("merge", startRow, startCol, ErrOutOfRange)
	}

	// Dry-run pass: collect the occupying cell of every position and
	// reject before mutating anything.
	var collected []*Cell
	for i := startRow; i <= endRow; i++ {
		for j := startCol; j <= endCol; j++ {
			cell := g.CellAt(i, j)
			if cell == nil {
				return regionError("merge", i, j, ErrOutOfRange)
			}
			if cell.startRow < startRow || cell.endRow > endRow ||
				cell.startCol < startCol || cell.endCol > endCol {
				return regionError("merge", i, j, ErrPartialCell)
			}
			collected = append(collected, cell)
		}
	}

	// A spanned cell was collected once per slot it covers; process
	// each distinct cell once. The first in row-major order is the
	// merge target.
	target := collected[0]
	seen := map[*Cell]bool{target: true}
	for _, cell := range collected[1:] {
		if seen[cell] {
			continue
		}
		seen[cell] = true
		g.tree.AppendContent(target.node, g.tree.Content(cell.node))
		g.tree.RemoveCell(cell.node)
	}

	target.setColSpan(endCol - startCol + 1)
	target.setRowSpan(endRow - startRow + 1)

	g.Refresh()
	return nil
}

// SplitCell decomposes the cell at the given logical position into
// rowSpan*colSpan unit cells occupying the same rectangle. The original
// node is resized to 1x1, keeps the content, and serves as the top-left
// cell; the newly created empty nodes are returned in row-major
// creation order.
func (g *Grid) SplitCell(rowIndex, colIndex int) ([]Node, error) {
	cell := g.CellAt(rowIndex, colIndex)
	if cell == nil {
		return nil, regionError("split", rowIndex, colIndex, ErrOutOfRange)
	}

	content := g.tree.Content(cell.node)

	var created []Node
	for i := 0; i < cell.rowSpan; i++ {
		row := g.rows[cell.startRow+i]
		anchor := g.splitAnchor(row, cell)
		for j := 0; j < cell.colSpan; j++ {
			if i == 0 && j == 0 {
				continue
			}
			n := g.tree.NewCell()
			g.tree.InsertCellBefore(row.node, n, anchor)
			created = append(created, n)
		}
	}

	cell.setRowSpan(1)
	cell.setColSpan(1)
	// Reassign the captured content so the top-left cell keeps it even
	// if the tree relocated fragments while inserting siblings.
	g.tree.SetContent(cell.node, content)

	g.Refresh()
	return created, nil
}

// splitAnchor finds the node the new unit cells of a row are inserted
// before: the first cell at or after the split cell's start column that
// actually originates in this row rather than merely extending into it
// through a row span. A nil anchor appends at the row's end.
func (g *Grid) splitAnchor(row *Row, split *Cell) Node {
	col := split.startCol
	for col < len(row.columns) {
		c := row.columns[col]
		if c == nil {
			col++
			continue
		}
		if c != split && c.startRow == row.index {
			return c.node
		}
		col = c.endCol + 1
	}
	return nil
}
