package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotEditable        = errors.New("document is not editable in its current status")
	ErrNotDeletable       = errors.New("document is not deletable in its current status")
)

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// Validation constructs a field-level validation error.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidTransitionError reports a status change not permitted by the
// transition table or blocked by a guard precondition.
type InvalidTransitionError struct {
	DocumentType string
	From         string
	To           string
	Reason       string
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("invalid transition from %s to %s for %s", e.From, e.To, e.DocumentType)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// ConflictError wraps ErrConflict with the statuses involved so callers can
// re-fetch and retry against the actual current status.
type ConflictError struct {
	DocumentID string
	Expected   string
	Actual     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("document %s changed concurrently: expected status %s, found %s", e.DocumentID, e.Expected, e.Actual)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
