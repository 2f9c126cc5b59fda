package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Failure taxonomy shared by all layers. The HTTP boundary maps each kind to
// a status code; everything else surfaces as an unexpected failure.
var (
	// ErrNotFound signals that the referenced user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateKey signals a unique-index violation reported by the store.
	// The service layer translates it into a field-specific ConflictError.
	ErrDuplicateKey = errors.New("duplicate key")
)

// ConflictError reports a unique-field collision together with the value
// that collided.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Field, e.Value)
}

// FieldError is a single input-validation violation.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError aggregates violations in the order the fields were
// evaluated.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return strings.Join(parts, ", ")
}
