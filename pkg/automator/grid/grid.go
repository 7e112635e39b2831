// Package grid decodes uploaded spreadsheet bytes into an in-memory cell grid.
package grid

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Extent is the rectangular, zero-based, inclusive bounds of a sheet.
type Extent struct {
	MinRow int `json:"min_row"`
	MaxRow int `json:"max_row"`
	MinCol int `json:"min_col"`
	MaxCol int `json:"max_col"`
}

// SingleCell returns the extent covering only A1.
func SingleCell() Extent {
	return Extent{}
}

// Columns returns the number of columns spanned by the extent.
func (e Extent) Columns() int {
	return e.MaxCol - e.MinCol + 1
}

// Contains reports whether other lies entirely within e.
func (e Extent) Contains(other Extent) bool {
	return other.MinRow >= e.MinRow && other.MaxRow <= e.MaxRow &&
		other.MinCol >= e.MinCol && other.MaxCol <= e.MaxCol
}

// String renders the extent in A1 range notation.
func (e Extent) String() string {
	start, err := excelize.CoordinatesToCellName(e.MinCol+1, e.MinRow+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", e.MinRow, e.MinCol, e.MaxRow, e.MaxCol)
	}
	if e.MinRow == e.MaxRow && e.MinCol == e.MaxCol {
		return start
	}
	end, err := excelize.CoordinatesToCellName(e.MaxCol+1, e.MaxRow+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", e.MinRow, e.MinCol, e.MaxRow, e.MaxCol)
	}
	return start + ":" + end
}

// Sheet is a named grid of cell text values.
type Sheet struct {
	// Name is the sheet name.
	Name string
	// Extent is the declared bounds of the sheet.
	Extent Extent
	// rows is indexed [row][col], zero-based from A1.
	rows [][]string
}

// NewSheet creates a sheet from row-major cell text. A nil extent is derived
// from the populated cells, or SingleCell when there are none.
func NewSheet(name string, rows [][]string, extent *Extent) *Sheet {
	s := &Sheet{Name: name, rows: rows}
	if extent != nil {
		s.Extent = *extent
		return s
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		s.Extent = SingleCell()
		return s
	}
	s.Extent = Extent{MinRow: minRow, MaxRow: maxRow, MinCol: minCol, MaxCol: maxCol}
	return s
}

// Cell returns the text at the zero-based (row, col) and whether the cell exists.
func (s *Sheet) Cell(row, col int) (string, bool) {
	if s == nil || row < 0 || col < 0 || row >= len(s.rows) {
		return "", false
	}
	r := s.rows[row]
	if col >= len(r) {
		return "", false
	}
	return r[col], true
}

// Workbook is an ordered collection of sheets.
type Workbook struct {
	// Name is the file name the workbook was decoded from.
	Name   string
	sheets []*Sheet
}

// NewWorkbook creates a workbook with sheets in the given order.
func NewWorkbook(name string, sheets ...*Sheet) *Workbook {
	return &Workbook{Name: name, sheets: sheets}
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	if w == nil {
		return nil
	}
	names := make([]string, 0, len(w.sheets))
	for _, s := range w.sheets {
		names = append(names, s.Name)
	}
	return names
}

// Sheet returns the named sheet, or nil if the workbook has no such sheet.
func (w *Workbook) Sheet(name string) *Sheet {
	if w == nil {
		return nil
	}
	for _, s := range w.sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}
