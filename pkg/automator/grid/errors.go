package grid

import "errors"

// ErrEmptyInput indicates the uploaded file has no content.
var ErrEmptyInput = errors.New("empty input")

// ErrInvalidFormat indicates the input is neither a readable workbook nor delimited text.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrUnsupportedFormat indicates a recognised container that cannot be decoded,
// such as a legacy binary .xls or a password-protected workbook.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
