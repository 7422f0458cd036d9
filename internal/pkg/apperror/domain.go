package apperror

import (
	"errors"
	"fmt"
)

// ValidationError reports user-correctable input. Field names the first offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidation creates a ValidationError for the given field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports that the requested slot is already occupied.
type ConflictError struct {
	CourtID   string
	Date      string
	StartTime string
	EndTime   string
}

func (e *ConflictError) Error() string {
	return "slot already booked"
}

// NotFoundError reports a lookup miss (booking code, reservation, court, tariff...).
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// NewNotFound creates a NotFoundError.
func NewNotFound(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// StoreError wraps a collaborator (database, blob storage) failure.
// It is surfaced as a generic failure and never retried by the core.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError unless it is nil or already a typed domain error.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		se *StoreError
		ve *ValidationError
		ce *ConflictError
		ne *NotFoundError
		ae *AppError
	)
	if errors.As(err, &se) || errors.As(err, &ve) || errors.As(err, &ce) || errors.As(err, &ne) || errors.As(err, &ae) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
