package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by the adapters and services.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("dictionary unavailable")
)

// FieldError is one rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists the rejected fields of one request and matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError from the rejected fields.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
