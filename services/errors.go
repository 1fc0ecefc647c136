package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy. Validation, conflict, not-found and authorization
// failures are detected before any write and returned without touching the
// store; store failures are classified at the boundary and logged.

// ValidationError reports malformed or out-of-range input, with field
// detail when available.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a duplicate unique field.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports an absent referenced entity.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// AuthenticationError reports bad credentials or an invalid session.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// AuthorizationError reports a valid session with insufficient rights.
// Owned resources answer with this rather than not-found, so existence is
// acknowledged but access denied.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// TransientStoreError marks the store as unreachable so callers can back
// off and retry, distinct from other server errors.
type TransientStoreError struct {
	Err error
}

func (e *TransientStoreError) Error() string { return "store unavailable: " + e.Err.Error() }
func (e *TransientStoreError) Unwrap() error { return e.Err }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// storeError classifies a gorm error. Unique-index violations become
// conflicts so the index stays the real enforcement point behind the
// fast-path existence checks.
func storeError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{Resource: resource}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflictf("%s already exists", resource)
	case errors.Is(err, gorm.ErrInvalidDB), errors.Is(err, gorm.ErrInvalidTransaction):
		return &TransientStoreError{Err: err}
	default:
		return err
	}
}
