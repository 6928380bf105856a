package errors

import (
	"errors"
	"strings"
)

// ValidationError reports one or more business rules violated by a write.
// It is surfaced to clients as a 400 response.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError from the given messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// AsValidationError unwraps err into a ValidationError when possible
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
