package tablegrid

// Axis selects which span of a cell an operation refers to.
type Axis int

const (
	// AxisRow addresses a cell's row span.
	AxisRow Axis = iota
	// AxisCol addresses a cell's column span.
	AxisCol
)

// Node is an opaque handle to a row or cell in the underlying tree.
// The concrete type is owned by the TableTree implementation; the grid
// only stores handles and compares them for identity, so implementations
// must hand out comparable values (typically pointers).
type Node any

// Content is an opaque cell content value. The grid moves content
// between cells during merge and split but never inspects it.
type Content any

// TableTree abstracts the underlying row/cell tree a Grid is built
// over. Implementations are expected to report nodes in document order
// and to keep that order stable between calls unless mutated through
// this interface.
type TableTree interface {
	// RowNodes returns the ordered row nodes under the root, or an
	// empty slice if the root has no row container.
	RowNodes() []Node

	// CellNodes returns the ordered cell nodes of a row, filtered to
	// header/data cell kinds.
	CellNodes(row Node) []Node

	// Span reports the row or column span stored on a cell. Unset or
	// unparsable spans read as 1.
	Span(cell Node, axis Axis) int

	// SetSpan stores a span on a cell. A value of 1 (or less) clears
	// any stored span marker instead of recording an explicit "1".
	SetSpan(cell Node, axis Axis, n int)

	// InsertCellBefore inserts cell into row immediately before the
	// given sibling. A nil before appends at the end of the row.
	InsertCellBefore(row, cell, before Node)

	// RemoveCell detaches a cell node from its row.
	RemoveCell(cell Node)

	// Content returns a cell's content value.
	Content(cell Node) Content

	// SetContent replaces a cell's content.
	SetContent(cell Node, c Content)

	// AppendContent appends content to a cell. Implementations insert a
	// line-break separator first when the cell's trailing content is
	// plain inline text, so merged text runs do not fuse visually.
	AppendContent(cell Node, c Content)

	// NewCell creates a new empty, detached cell node.
	NewCell() Node
}

// ContentTexter is implemented by trees that can render a cell's
// content as plain text. Layout snapshots use it when available.
type ContentTexter interface {
	ContentText(cell Node) string
}
