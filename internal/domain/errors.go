// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a payload or entity fails validation.
	// It is usually reached through a *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyISBN is returned when a book has no isbn.
	ErrEmptyISBN = errors.New("book isbn cannot be empty")

	// ErrIncompleteBook is returned when a book is missing a required attribute.
	ErrIncompleteBook = errors.New("book is missing required attributes")
)

// ValidationError carries every schema violation found for a single payload,
// in the order the validator produced them.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError from the given violation messages.
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Unwrap makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
