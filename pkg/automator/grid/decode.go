package grid

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}

	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Decode decodes raw file bytes into a Workbook. The format is chosen from the
// content signature first and the file extension second.
func Decode(name string, data []byte) (*Workbook, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	bookName := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case bytes.HasPrefix(data, zipMagic):
		return decodeXLSX(bookName, data)
	case bytes.HasPrefix(data, oleMagic):
		return nil, fmt.Errorf("%w: %s is a legacy or encrypted workbook", ErrUnsupportedFormat, bookName)
	case isWorkbookExt(ext):
		return nil, fmt.Errorf("%w: %s is not a zip container", ErrInvalidFormat, bookName)
	}

	text, err := toUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, bookName, err)
	}
	return decodeDelimited(bookName, text, delimiterFor(ext, text))
}

// toUTF8 normalizes delimited text to UTF-8. A UTF-8 or UTF-16 byte order mark
// selects that encoding; other input that is not valid UTF-8 is read as
// Windows-1252, the default of Excel's CSV export. NUL bytes outside UTF-16
// mark binary content.
func toUTF8(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		data = data[len(utf8BOM):]
	case bytes.HasPrefix(data, utf16LEBOM), bytes.HasPrefix(data, utf16BEBOM):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
	}

	if bytes.IndexByte(data, 0) >= 0 {
		return nil, errors.New("binary content")
	}
	if utf8.Valid(data) {
		return data, nil
	}
	return charmap.Windows1252.NewDecoder().Bytes(data)
}

func isWorkbookExt(ext string) bool {
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm", ".xls":
		return true
	}
	return false
}
