package tablegrid

import (
	"errors"
	"fmt"
)

// ErrNothingToMerge indicates the merge region is a single cell position.
var ErrNothingToMerge = errors.New("merge region is a single cell")

// ErrOutOfRange indicates a logical coordinate outside the grid.
var ErrOutOfRange = errors.New("position out of range")

// ErrPartialCell indicates a cell inside the merge region whose span
// extends outside it, so the region is not a clean union of whole cells.
var ErrPartialCell = errors.New("cell extends outside the merge region")

// ErrNoTable indicates a root node with no table content.
var ErrNoTable = errors.New("no table found")

// RegionError reports a merge or split failure at a logical position.
type RegionError struct {
	Op  string // "merge", "split"
	Row int
	Col int
	Err error
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("%s failed at row %d, column %d: %v", e.Op, e.Row, e.Col, e.Err)
}

func (e *RegionError) Unwrap() error {
	return e.Err
}

func regionError(op string, row, col int, err error) *RegionError {
	return &RegionError{Op: op, Row: row, Col: col, Err: err}
}
