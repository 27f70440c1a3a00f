// Package xlsxtable converts between xlsx worksheets and the grid
// model. Merged ranges map to row/column spans: the range's top-left
// anchor carries the span and the covered positions hold no cell.
package xlsxtable

import (
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/memtree"
)

type pos struct{ row, col int } // 1-based sheet coordinates

type span struct{ rowSpan, colSpan int }

// Import reads a worksheet into an in-memory table tree. Cell values
// become content, merged ranges become spans on their anchor cell.
func Import(f *excelize.File, sheet string) (*memtree.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}

	// GetRows trims trailing empty cells and rows; merged ranges can
	// extend past them, so the sheet extent covers both.
	maxRow, maxCol := len(rows), 0
	for _, r := range rows {
		if len(r) > maxCol {
			maxCol = len(r)
		}
	}

	anchors := make(map[pos]span)
	covered := make(map[pos]bool)
	for _, m := range merges {
		c1, r1, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			return nil, err
		}
		c2, r2, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			return nil, err
		}
		anchors[pos{r1, c1}] = span{r2 - r1 + 1, c2 - c1 + 1}
		for i := r1; i <= r2; i++ {
			for j := c1; j <= c2; j++ {
				if i == r1 && j == c1 {
					continue
				}
				covered[pos{i, j}] = true
			}
		}
		if r2 > maxRow {
			maxRow = r2
		}
		if c2 > maxCol {
			maxCol = c2
		}
	}

	t := memtree.New()
	for r := 1; r <= maxRow; r++ {
		row := t.AddRow()
		for c := 1; c <= maxCol; c++ {
			if covered[pos{r, c}] {
				continue
			}
			var value string
			if r-1 < len(rows) && c-1 < len(rows[r-1]) {
				value = rows[r-1][c-1]
			}
			cell := t.AddCell(row, value)
			if s, ok := anchors[pos{r, c}]; ok {
				t.SetSpan(cell, tablegrid.AxisRow, s.rowSpan)
				t.SetSpan(cell, tablegrid.AxisCol, s.colSpan)
			}
		}
	}
	return t, nil
}

// Export writes a grid layout snapshot to a worksheet, creating the
// sheet if needed. Spanned cells become merged ranges.
func Export(f *excelize.File, sheet string, l tablegrid.Layout) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for _, row := range l.Rows {
		for _, cell := range row.Cells {
			start, err := excelize.CoordinatesToCellName(cell.Col+1, cell.Row+1)
			if err != nil {
				return err
			}
			if cell.Text != "" {
				if err := f.SetCellValue(sheet, start, cell.Text); err != nil {
					return err
				}
			}
			if cell.RowSpan > 1 || cell.ColSpan > 1 {
				end, err := excelize.CoordinatesToCellName(cell.Col+cell.ColSpan, cell.Row+cell.RowSpan)
				if err != nil {
					return err
				}
				if err := f.MergeCell(sheet, start, end); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
