package automator

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ParseFailureMessage is the user-facing text for a file that cannot be decoded.
const ParseFailureMessage = "Failed to parse file. Please ensure it is a valid CSV or Excel file."

// DecodeError represents an uploaded file that could not be decoded.
type DecodeError struct {
	FileName string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error in file %q: %v", e.FileName, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text shown to the user.
func (e *DecodeError) UserMessage() string {
	return ParseFailureMessage
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(fileName string, err error) *DecodeError {
	return &DecodeError{
		FileName: fileName,
		Err:      err,
	}
}
