package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every NotFoundError through errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a request that is valid but not allowed in the current state.
	ErrConflict = errors.New("conflict")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrAttemptCompleted   = fmt.Errorf("%w: lesson attempt already completed", ErrConflict)
)

// NotFoundError reports a missing course, lesson, task, user or record.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(entity string, id interface{}) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError reports input rejected before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
