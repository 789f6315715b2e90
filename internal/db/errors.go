package db

import (
	"errors"
	"fmt"
)

// ErrInvalidID is returned (wrapped) when a caller-supplied identifier
// string is not a well-formed ObjectID.
var ErrInvalidID = errors.New("invalid identifier")

// ValidationError reports a field value that violates a store invariant.
// It is always surfaced to the caller, never logged and swallowed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
