package generation

import (
	"errors"
	"fmt"
)

// FailureMessage is the user-facing text for every generation failure.
const FailureMessage = "Failed to generate VBA code. Please check your API key and try again."

// ErrServiceFailure indicates the service call itself failed (network, auth, quota, configuration).
var ErrServiceFailure = errors.New("generation service failure")

// ErrContractViolation indicates the service answered with an empty or malformed body.
var ErrContractViolation = errors.New("generation response contract violation")

// ErrAPIKeyNotSet indicates no API key was configured for the provider.
var ErrAPIKeyNotSet = errors.New("API key not set")

// Error is a failed generation. Kind is ErrServiceFailure or ErrContractViolation.
type Error struct {
	Kind  error
	Model string
	Err   error
}

func (e *Error) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v (model %s): %v", e.Kind, e.Model, e.Err)
}

// Unwrap exposes both the failure class and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// UserMessage returns the text shown to the user for this failure.
func (e *Error) UserMessage() string {
	return FailureMessage
}

// UserMessage returns the user-facing text for err: FailureMessage for
// generation failures, otherwise the error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.UserMessage()
	}
	return err.Error()
}
