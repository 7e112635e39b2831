package grid

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// decodeXLSX reads every sheet of an OOXML workbook. A sheet whose rows cannot
// be read is kept with no cells so the sheet list stays complete. The declared
// dimension is used only when it covers every populated cell, since writers do
// not always keep it current.
func decodeXLSX(bookName string, data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	sheets := make([]*Sheet, 0, len(sheetList))
	for _, sheetName := range sheetList {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			rows = nil
		}

		sheet := NewSheet(sheetName, rows, nil)
		if dim, err := f.GetSheetDimension(sheetName); err == nil {
			if declared, ok := parseRangeToExtent(dim); ok && declared.Contains(sheet.Extent) {
				sheet.Extent = declared
			}
		}

		sheets = append(sheets, sheet)
	}

	return NewWorkbook(bookName, sheets...), nil
}
