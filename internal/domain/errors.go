package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrMalformedRow = errors.New("malformed row")
	ErrUnknownValue = errors.New("unknown value")
	ErrValidation   = errors.New("validation error")
)

// RowError describes why a single input row was rejected.
type RowError struct {
	Column int
	Value  string
	Reason string
}

func (e *RowError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("column %d: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("column %d: %s (%q)", e.Column, e.Reason, e.Value)
}

func (e *RowError) Unwrap() error { return ErrMalformedRow }

// NewRowError creates a RowError for the given column.
func NewRowError(column int, value, reason string) *RowError {
	return &RowError{Column: column, Value: value, Reason: reason}
}
