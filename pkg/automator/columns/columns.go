// Package columns derives the advisory column list of a source sheet.
package columns

import (
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/grid"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"github.com/xuri/excelize/v2"
)

// Letter converts a zero-based column index to its spreadsheet letter
// (0 -> A, 25 -> Z, 26 -> AA). It returns "" outside the sheet column range.
func Letter(index int) string {
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return ""
	}
	return name
}

// Extract walks the first row of the sheet's extent and returns one ColumnDef
// per column. A nil sheet yields an empty list.
func Extract(sheet *grid.Sheet) []models.ColumnDef {
	if sheet == nil {
		return []models.ColumnDef{}
	}

	extent := sheet.Extent
	last := min(extent.MaxCol, excelize.MaxColumns-1)
	if extent.MinCol < 0 || last < extent.MinCol {
		return []models.ColumnDef{}
	}

	cols := make([]models.ColumnDef, 0, last-extent.MinCol+1)
	for c := extent.MinCol; c <= last; c++ {
		header := models.EmptyHeader
		if v, ok := sheet.Cell(extent.MinRow, c); ok && v != "" {
			header = v
		}
		cols = append(cols, models.ColumnDef{Letter: Letter(c), Header: header})
	}
	return cols
}

// FromWorkbook extracts the columns of the named sheet. An absent workbook or
// unknown sheet name yields an empty list.
func FromWorkbook(wb *grid.Workbook, sheetName string) []models.ColumnDef {
	if wb == nil || sheetName == "" {
		return []models.ColumnDef{}
	}
	return Extract(wb.Sheet(sheetName))
}
