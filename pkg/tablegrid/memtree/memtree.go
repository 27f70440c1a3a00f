// Package memtree provides an in-memory row/cell tree implementing
// tablegrid.TableTree. It backs the package's tests and serves as the
// neutral intermediate representation for format importers.
package memtree

import (
	"strings"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid"
)

// Kind classifies a node.
type Kind int

const (
	// KindRow is a table row node.
	KindRow Kind = iota
	// KindDataCell is an ordinary cell.
	KindDataCell
	// KindHeaderCell is a header cell.
	KindHeaderCell
)

// Fragment is one piece of cell content. Block fragments start on a
// line of their own; inline fragments run together with the previous
// fragment.
type Fragment struct {
	Text  string
	Block bool
}

// Node is a row or cell in the tree.
type Node struct {
	kind     Kind
	rowSpan  int // 0 when no span marker is stored
	colSpan  int
	frags    []Fragment
	children []*Node
}

// Kind returns the node's classification.
func (n *Node) Kind() Kind { return n.kind }

// Fragments returns a cell's content fragments.
func (n *Node) Fragments() []Fragment { return n.frags }

// Table is an in-memory table tree.
type Table struct {
	rows []*Node
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// AddRow appends a new row node and returns it.
func (t *Table) AddRow() *Node {
	row := &Node{kind: KindRow}
	t.rows = append(t.rows, row)
	return row
}

// AddCell appends a unit data cell with the given text to a row.
func (t *Table) AddCell(row *Node, text string) *Node {
	cell := &Node{kind: KindDataCell}
	if text != "" {
		cell.frags = []Fragment{{Text: text}}
	}
	row.children = append(row.children, cell)
	return cell
}

// AddHeaderCell appends a unit header cell with the given text to a row.
func (t *Table) AddHeaderCell(row *Node, text string) *Node {
	cell := &Node{kind: KindHeaderCell}
	if text != "" {
		cell.frags = []Fragment{{Text: text}}
	}
	row.children = append(row.children, cell)
	return cell
}

// AddSpannedCell appends a data cell spanning the given number of rows
// and columns.
func (t *Table) AddSpannedCell(row *Node, text string, rowSpan, colSpan int) *Node {
	cell := t.AddCell(row, text)
	t.SetSpan(cell, tablegrid.AxisRow, rowSpan)
	t.SetSpan(cell, tablegrid.AxisCol, colSpan)
	return cell
}

// Build constructs a table of unit cells from rows of space-separated
// cell texts, one string per row.
func Build(rows ...string) *Table {
	t := New()
	for _, spec := range rows {
		row := t.AddRow()
		for _, text := range strings.Fields(spec) {
			t.AddCell(row, text)
		}
	}
	return t
}

// RowNodes implements tablegrid.TableTree.
func (t *Table) RowNodes() []tablegrid.Node {
	out := make([]tablegrid.Node, len(t.rows))
	for i, r := range t.rows {
		out[i] = r
	}
	return out
}

// CellNodes implements tablegrid.TableTree.
func (t *Table) CellNodes(row tablegrid.Node) []tablegrid.Node {
	r := row.(*Node)
	var out []tablegrid.Node
	for _, c := range r.children {
		if c.kind == KindDataCell || c.kind == KindHeaderCell {
			out = append(out, c)
		}
	}
	return out
}

// Span implements tablegrid.TableTree.
func (t *Table) Span(cell tablegrid.Node, axis tablegrid.Axis) int {
	c := cell.(*Node)
	n := c.colSpan
	if axis == tablegrid.AxisRow {
		n = c.rowSpan
	}
	if n < 1 {
		return 1
	}
	return n
}

// SetSpan implements tablegrid.TableTree. A span of 1 clears the
// stored marker.
func (t *Table) SetSpan(cell tablegrid.Node, axis tablegrid.Axis, n int) {
	c := cell.(*Node)
	if n <= 1 {
		n = 0
	}
	if axis == tablegrid.AxisRow {
		c.rowSpan = n
	} else {
		c.colSpan = n
	}
}

// InsertCellBefore implements tablegrid.TableTree.
func (t *Table) InsertCellBefore(row, cell, before tablegrid.Node) {
	r := row.(*Node)
	c := cell.(*Node)
	if before == nil {
		r.children = append(r.children, c)
		return
	}
	b := before.(*Node)
	for i, child := range r.children {
		if child == b {
			r.children = append(r.children[:i], append([]*Node{c}, r.children[i:]...)...)
			return
		}
	}
	r.children = append(r.children, c)
}

// RemoveCell implements tablegrid.TableTree.
func (t *Table) RemoveCell(cell tablegrid.Node) {
	c := cell.(*Node)
	for _, row := range t.rows {
		for i, child := range row.children {
			if child == c {
				row.children = append(row.children[:i], row.children[i+1:]...)
				return
			}
		}
	}
}

// Content implements tablegrid.TableTree.
func (t *Table) Content(cell tablegrid.Node) tablegrid.Content {
	c := cell.(*Node)
	frags := make([]Fragment, len(c.frags))
	copy(frags, c.frags)
	return frags
}

// SetContent implements tablegrid.TableTree.
func (t *Table) SetContent(cell tablegrid.Node, content tablegrid.Content) {
	c := cell.(*Node)
	frags, _ := content.([]Fragment)
	c.frags = frags
}

// AppendContent implements tablegrid.TableTree. When the cell's
// trailing fragment is non-empty inline text, a block break is inserted
// first so the appended text does not fuse with it.
func (t *Table) AppendContent(cell tablegrid.Node, content tablegrid.Content) {
	c := cell.(*Node)
	frags, _ := content.([]Fragment)
	if len(frags) == 0 {
		return
	}
	if n := len(c.frags); n > 0 && !c.frags[n-1].Block && c.frags[n-1].Text != "" {
		c.frags = append(c.frags, Fragment{Block: true})
	}
	c.frags = append(c.frags, frags...)
}

// NewCell implements tablegrid.TableTree.
func (t *Table) NewCell() tablegrid.Node {
	return &Node{kind: KindDataCell}
}

// ContentText implements tablegrid.ContentTexter. Block fragments are
// joined with newlines, inline fragments run together.
func (t *Table) ContentText(cell tablegrid.Node) string {
	c := cell.(*Node)
	var sb strings.Builder
	for _, f := range c.frags {
		if f.Block && sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}
