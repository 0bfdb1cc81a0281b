// Package provider holds types shared by dictionary API adapters and their callers.
package provider

import (
	"errors"
	"fmt"
)

// Fallback texts for lookup failures whose response omits a field.
const (
	FallbackTitle      = "No Definitions Found"
	FallbackMessage    = "Word not found"
	FallbackResolution = "Please try searching for another word."
)

// ErrMalformedResponse indicates a successful status with a body that could not be decoded.
var ErrMalformedResponse = errors.New("malformed dictionary response")

// LookupError is a definitive "no result" answer from the dictionary API:
// a non-2xx response whose body described the failure.
type LookupError struct {
	Status     int
	Title      string
	Message    string
	Resolution string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup failed (status %d): %s", e.Status, e.Title)
}

// NewLookupError builds a LookupError, substituting fallbacks for empty fields.
func NewLookupError(status int, title, message, resolution string) *LookupError {
	if title == "" {
		title = FallbackTitle
	}
	if message == "" {
		message = FallbackMessage
	}
	if resolution == "" {
		resolution = FallbackResolution
	}
	return &LookupError{
		Status:     status,
		Title:      title,
		Message:    message,
		Resolution: resolution,
	}
}
