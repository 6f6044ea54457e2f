package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")

	// ErrNoCandidates: the routing pool itself was empty.
	ErrNoCandidates = errors.New("no candidate caseworkers")
	// ErrAllAtCapacity: the pool was non-empty but nobody has free capacity.
	ErrAllAtCapacity = errors.New("all caseworkers at capacity")
	// ErrInvalidTransition: a lifecycle move that is not allowed from the current state.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrStoreFailure wraps persistence errors that have no more specific mapping.
	ErrStoreFailure = errors.New("store failure")
	// ErrPartialBatchFailure is reported by batch operations when some items failed.
	ErrPartialBatchFailure = errors.New("partial batch failure")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
