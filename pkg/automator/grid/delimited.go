package grid

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DelimitedSheetName is the name given to the single sheet of a delimited-text file.
const DelimitedSheetName = "Sheet1"

// decodeDelimited reads CSV-like text into a single-sheet workbook anchored at A1.
func decodeDelimited(bookName string, data []byte, delim rune) (*Workbook, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	width := 0
	for i, row := range rows {
		if len(row) > excelize.MaxColumns {
			rows[i] = row[:excelize.MaxColumns]
		}
		if len(rows[i]) > width {
			width = len(rows[i])
		}
	}

	extent := SingleCell()
	if len(rows) > 0 && width > 0 {
		extent = Extent{MinRow: 0, MaxRow: len(rows) - 1, MinCol: 0, MaxCol: width - 1}
	}

	return NewWorkbook(bookName, NewSheet(DelimitedSheetName, rows, &extent)), nil
}

// delimiterFor picks the field separator: tab for .tsv/.tab files, otherwise
// whichever of comma, semicolon, or tab occurs most in the first line.
func delimiterFor(ext string, data []byte) rune {
	if ext == ".tsv" || ext == ".tab" {
		return '\t'
	}

	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}

	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, c := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}
