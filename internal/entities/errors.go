package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates a referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates a field constraint was violated
	ErrValidation = errors.New("validation failed")
)

// NotFoundError identifies the missing entity. Parent is set for nested
// lookups such as a review under a given book.
type NotFoundError struct {
	Resource string
	ID       uint
	Parent   string
	ParentID uint
}

func (e *NotFoundError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s with id %d not found for %s %d", e.Resource, e.ID, e.Parent, e.ParentID)
	}
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConflictError reports a uniqueness violation on Field. Parent is set when
// the duplicate is a membership, e.g. a book already on a bookshelf.
type ConflictError struct {
	Resource string
	Field    string
	Value    any
	Parent   string
	ParentID uint
}

func (e *ConflictError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s with %s %v is already in %s %d", e.Resource, e.Field, e.Value, e.Parent, e.ParentID)
	}
	return fmt.Sprintf("%s with %s %v already exists", e.Resource, e.Field, e.Value)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}
