// Package htmltable adapts a parsed HTML <table> element to the
// tablegrid.TableTree interface, mapping spans to rowspan/colspan
// attributes and cell content to the element's child nodes.
package htmltable

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid"
)

// Table wraps a <table> element. The document it was parsed from is
// retained so Render can serialize the whole mutated document.
type Table struct {
	doc   *html.Node
	table *html.Node
}

// Parse reads an HTML document and wraps its first <table> element.
// Returns tablegrid.ErrNoTable when the document has none.
func Parse(r io.Reader) (*Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	table := findTable(doc)
	if table == nil {
		return nil, tablegrid.ErrNoTable
	}
	return &Table{doc: doc, table: table}, nil
}

// FromNode wraps an existing <table> element, or the first <table>
// found under n.
func FromNode(n *html.Node) (*Table, error) {
	table := findTable(n)
	if table == nil {
		return nil, tablegrid.ErrNoTable
	}
	return &Table{doc: n, table: table}, nil
}

// Render serializes the document the table was parsed from, including
// any mutations made through the tree interface.
func (t *Table) Render(w io.Writer) error {
	return html.Render(w, t.doc)
}

// Node returns the underlying <table> element.
func (t *Table) Node() *html.Node { return t.table }

func findTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Table {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTable(c); found != nil {
			return found
		}
	}
	return nil
}

// RowNodes implements tablegrid.TableTree. Rows are collected in
// document order, descending into thead/tbody/tfoot sections.
func (t *Table) RowNodes() []tablegrid.Node {
	var out []tablegrid.Node
	for c := t.table.FirstChild; c != nil; c = c.NextSibling {
		switch c.DataAtom {
		case atom.Tr:
			out = append(out, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.DataAtom == atom.Tr {
					out = append(out, r)
				}
			}
		}
	}
	return out
}

// CellNodes implements tablegrid.TableTree, filtering to td/th.
func (t *Table) CellNodes(row tablegrid.Node) []tablegrid.Node {
	r := row.(*html.Node)
	var out []tablegrid.Node
	for c := r.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
			out = append(out, c)
		}
	}
	return out
}

func spanAttr(axis tablegrid.Axis) string {
	if axis == tablegrid.AxisRow {
		return "rowspan"
	}
	return "colspan"
}

// Span implements tablegrid.TableTree. A missing or unparsable
// attribute, or a value below 1, reads as 1.
func (t *Table) Span(cell tablegrid.Node, axis tablegrid.Axis) int {
	n := cell.(*html.Node)
	key := spanAttr(axis)
	for _, a := range n.Attr {
		if a.Key == key {
			v, err := strconv.Atoi(strings.TrimSpace(a.Val))
			if err != nil || v < 1 {
				return 1
			}
			return v
		}
	}
	return 1
}

// SetSpan implements tablegrid.TableTree. A span of 1 removes the
// attribute instead of writing an explicit "1".
func (t *Table) SetSpan(cell tablegrid.Node, axis tablegrid.Axis, v int) {
	n := cell.(*html.Node)
	key := spanAttr(axis)
	for i, a := range n.Attr {
		if a.Key == key {
			if v <= 1 {
				n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			} else {
				n.Attr[i].Val = strconv.Itoa(v)
			}
			return
		}
	}
	if v > 1 {
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: strconv.Itoa(v)})
	}
}

// InsertCellBefore implements tablegrid.TableTree.
func (t *Table) InsertCellBefore(row, cell, before tablegrid.Node) {
	r := row.(*html.Node)
	c := cell.(*html.Node)
	if before == nil {
		r.AppendChild(c)
		return
	}
	r.InsertBefore(c, before.(*html.Node))
}

// RemoveCell implements tablegrid.TableTree.
func (t *Table) RemoveCell(cell tablegrid.Node) {
	c := cell.(*html.Node)
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
}

// Content implements tablegrid.TableTree. The value is the cell's
// child nodes; they stay attached until reassigned through SetContent
// or AppendContent.
func (t *Table) Content(cell tablegrid.Node) tablegrid.Content {
	n := cell.(*html.Node)
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// SetContent implements tablegrid.TableTree.
func (t *Table) SetContent(cell tablegrid.Node, content tablegrid.Content) {
	n := cell.(*html.Node)
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	t.appendNodes(n, content)
}

// AppendContent implements tablegrid.TableTree. A <br> separator is
// inserted first when the cell's trailing child is non-empty text, so
// merged text runs stay visually distinct.
func (t *Table) AppendContent(cell tablegrid.Node, content tablegrid.Content) {
	n := cell.(*html.Node)
	nodes, _ := content.([]*html.Node)
	if len(nodes) == 0 {
		return
	}
	if last := n.LastChild; last != nil && last.Type == html.TextNode && strings.TrimSpace(last.Data) != "" {
		n.AppendChild(&html.Node{Type: html.ElementNode, DataAtom: atom.Br, Data: "br"})
	}
	t.appendNodes(n, nodes)
}

func (t *Table) appendNodes(dst *html.Node, content tablegrid.Content) {
	nodes, _ := content.([]*html.Node)
	for _, c := range nodes {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		dst.AppendChild(c)
	}
}

// NewCell implements tablegrid.TableTree, creating a detached <td>.
func (t *Table) NewCell() tablegrid.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Td, Data: "td"}
}

// ContentText implements tablegrid.ContentTexter: the concatenated
// text of the cell's descendants, with br/p boundaries as newlines.
func (t *Table) ContentText(cell tablegrid.Node) string {
	var sb strings.Builder
	n := cell.(*html.Node)
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch {
		case c.Type == html.TextNode:
			sb.WriteString(c.Data)
		case c.DataAtom == atom.Br:
			sb.WriteString("\n")
		case c.DataAtom == atom.P && sb.Len() > 0:
			sb.WriteString("\n")
		}
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		walk(ch)
	}
	return strings.TrimSpace(sb.String())
}
