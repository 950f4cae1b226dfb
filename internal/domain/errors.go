package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput signals a malformed client request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDocument signals a stored document that does not decode into its schema.
	ErrInvalidDocument = errors.New("invalid document")
)

// FieldError describes one rejected field of one element in a request.
type FieldError struct {
	Index   int
	Field   string
	Message string
}

// ValidationError wraps ErrInvalidInput with the list of rejected fields.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("[%d].%s: %s", f.Index, f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates a validation error.
func NewValidationError(fields []FieldError) error {
	return &ValidationError{Fields: fields}
}
