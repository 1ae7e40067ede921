package models

import (
	"errors"
	"fmt"
)

// ErrLineNotFound reports an order-line index that references no line.
var ErrLineNotFound = errors.New("order line not found")

// ValidationError communicates rule violations back to HTTP handlers.
// An operation that returns one has not mutated any state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a plain message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation helps callers distinguish between business and
// infrastructure failures.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// SchemaError reports that the catalog source is missing a column the
// current operation cannot work without.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog schema has no usable %q column", e.Column)
}

// IsSchema reports whether err is (or wraps) a SchemaError.
func IsSchema(err error) bool {
	var s *SchemaError
	return errors.As(err, &s)
}
