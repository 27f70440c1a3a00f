package htmltable

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid"
)

func parseTable(t *testing.T, src string) *Table {
	t.Helper()
	table, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return table
}

func render(t *testing.T, table *Table) string {
	t.Helper()
	var sb strings.Builder
	if err := table.Render(&sb); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return sb.String()
}

func TestParseNoTable(t *testing.T) {
	_, err := Parse(strings.NewReader("<p>no tables here</p>"))
	if !errors.Is(err, tablegrid.ErrNoTable) {
		t.Fatalf("Parse = %v, want ErrNoTable", err)
	}
}

func TestGridOverParsedTable(t *testing.T) {
	table := parseTable(t, `<table>
<thead><tr><th colspan="2">head</th></tr></thead>
<tbody>
<tr><td rowspan="2">a</td><td>b</td></tr>
<tr><td>c</td></tr>
</tbody>
</table>`)

	g := tablegrid.NewGrid(table)
	if g.RowCount() != 3 || g.ColCount() != 2 {
		t.Fatalf("grid = %dx%d, want 3x2", g.RowCount(), g.ColCount())
	}
	if head := g.CellAt(0, 0); head == nil || head.ColSpan() != 2 {
		t.Errorf("header cell should span 2 columns")
	}
	if a := g.CellAt(1, 0); a == nil || a.RowSpan() != 2 {
		t.Errorf("cell a should span 2 rows")
	}
	if g.CellAt(2, 0) != g.CellAt(1, 0) {
		t.Errorf("row 2 column 0 should be covered by cell a")
	}
	if c := g.CellAt(2, 1); c == nil || table.ContentText(c.Node()) != "c" {
		t.Errorf("cell c not at (2,1)")
	}
}

func TestSpanAttributeRules(t *testing.T) {
	table := parseTable(t, `<table><tr>
<td>plain</td>
<td colspan="0">zero</td>
<td colspan="x">junk</td>
<td colspan=" 3 ">padded</td>
</tr></table>`)

	cells := table.CellNodes(table.RowNodes()[0])
	want := []int{1, 1, 1, 3}
	for i, w := range want {
		if got := table.Span(cells[i], tablegrid.AxisCol); got != w {
			t.Errorf("cell %d colspan = %d, want %d", i, got, w)
		}
	}

	// Writing 1 removes the attribute, writing >1 records it.
	table.SetSpan(cells[3], tablegrid.AxisCol, 1)
	if out := render(t, table); strings.Contains(out, "colspan=\" 3 \"") || strings.Contains(out, `colspan="1"`) {
		t.Errorf("colspan attribute not cleared: %s", out)
	}
	table.SetSpan(cells[0], tablegrid.AxisRow, 2)
	if out := render(t, table); !strings.Contains(out, `rowspan="2"`) {
		t.Errorf("rowspan attribute not written: %s", out)
	}
}

func TestAppendContentSeparator(t *testing.T) {
	table := parseTable(t, `<table><tr><td>left</td><td>right</td><td><p>block</p></td><td>tail</td></tr></table>`)
	cells := table.CellNodes(table.RowNodes()[0])

	// Trailing plain text gets a <br> before the appended run.
	table.AppendContent(cells[0], table.Content(cells[1]))
	if out := render(t, table); !strings.Contains(out, "<td>left<br/>right</td>") {
		t.Errorf("expected br separator, got: %s", out)
	}

	// Trailing element content does not.
	table.AppendContent(cells[2], table.Content(cells[3]))
	if out := render(t, table); !strings.Contains(out, "<td><p>block</p>tail</td>") {
		t.Errorf("expected no separator after element, got: %s", out)
	}
}

func TestMergeOnHTMLEndToEnd(t *testing.T) {
	table := parseTable(t, `<table>
<tr><td>a</td><td>b</td><td>c</td></tr>
<tr><td>d</td><td>e</td><td>f</td></tr>
</table>`)

	g := tablegrid.NewGrid(table)
	if err := g.MergeCells(0, 0, 1, 1); err != nil {
		t.Fatalf("MergeCells failed: %v", err)
	}

	out := render(t, table)
	if !strings.Contains(out, `rowspan="2"`) || !strings.Contains(out, `colspan="2"`) {
		t.Errorf("merged cell missing span attributes: %s", out)
	}
	for _, gone := range []string{"<td>b</td>", "<td>d</td>", "<td>e</td>"} {
		if strings.Contains(out, gone) {
			t.Errorf("absorbed cell %s still present: %s", gone, out)
		}
	}
	if got := table.ContentText(g.CellAt(0, 0).Node()); got != "a\nb\nd\ne" {
		t.Errorf("merged content = %q, want %q", got, "a\nb\nd\ne")
	}

	// Splitting restores a 2x3 grid of unit cells.
	created, err := g.SplitCell(0, 0)
	if err != nil {
		t.Fatalf("SplitCell failed: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("created %d nodes, want 3", len(created))
	}
	if g.RowCount() != 2 || g.ColCount() != 3 {
		t.Errorf("grid = %dx%d, want 2x3", g.RowCount(), g.ColCount())
	}
	if out := render(t, table); strings.Contains(out, "rowspan") || strings.Contains(out, "colspan") {
		t.Errorf("split left span attributes behind: %s", out)
	}
}

func TestFromNode(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<table><tr><td>x</td></tr></table>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	table, err := FromNode(doc)
	if err != nil {
		t.Fatalf("FromNode failed: %v", err)
	}
	if table.Node().DataAtom != atom.Table {
		t.Errorf("Node() is not the table element")
	}
}
