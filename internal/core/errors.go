package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned for amounts that are not non-negative numbers.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrEmptyImport is returned when an import file holds no records.
	ErrEmptyImport = errors.New("import file contains no appointments")
)

// FieldError reports which form field failed validation
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
