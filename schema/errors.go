package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required field is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidNumber is returned when a numeric field cannot be parsed.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrUnexpectedNull is returned when null is given for a required number.
	ErrUnexpectedNull = errors.New("unexpected null")
	// ErrUnknownField is returned for an object key that names no field.
	// Keys are case-sensitive.
	ErrUnknownField = errors.New("unknown field")
	// ErrDuplicateField is returned when an object repeats a key.
	ErrDuplicateField = errors.New("duplicate field")
)

// FieldError identifies the field of a raw record that failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func missing(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}
