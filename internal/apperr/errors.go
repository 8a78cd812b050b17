// Package apperr defines the application's error taxonomy. Financial
// operations return these typed errors so the HTTP layer can map them to
// statuses and callers can branch with errors.As.
package apperr

import (
	"fmt"
	"strings"
)

// ValidationError reports every violated refund rule, not just the first.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// NewValidation wraps a rule-violation list.
func NewValidation(errs []string) *ValidationError {
	return &ValidationError{Errors: errs}
}

// NotFoundError means a referenced order, refund or invoice does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFound constructs a NotFoundError for the given resource and id.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidStateError means a state transition was attempted from a status
// that does not permit it.
type InvalidStateError struct {
	Current string
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// NewInvalidState records the refund's current status alongside the message.
func NewInvalidState(current, message string) *InvalidStateError {
	return &InvalidStateError{Current: current, Message: message}
}

// StorageError wraps a PDF read/write/delete failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorage wraps an underlying I/O error.
func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
