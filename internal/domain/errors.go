package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a target entity that is absent or not owned by the actor.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals a missing or malformed command parameter.
	ErrValidation = errors.New("validation failed")
	// ErrParse signals a model reply that carried no extractable JSON command.
	ErrParse = errors.New("reply not parseable")
	// ErrPersistence signals a store operation failure.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError wraps ErrValidation with the offending parameter name.
type ValidationError struct {
	Param string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: parameter %q is required", ErrValidation.Error(), e.Param)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewMissingParam creates a validation error for a missing required parameter.
func NewMissingParam(param string) error {
	return &ValidationError{Param: param}
}

// NotFoundError wraps ErrNotFound with the entity kind and id that failed resolution.
// Ownership failures report the same error as absent rows so a response cannot
// reveal whether another user's entity exists.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Kind, e.ID, ErrNotFound.Error())
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound creates a not-found error for an entity.
func NewNotFound(kind string, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}
