package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrNotConfigured       = errors.New("not configured")
	ErrStorage             = errors.New("storage failure")
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidIdentifier   = errors.New("invalid identifier format")
	ErrInvalidAvailability = errors.New("invalid availability state")
	ErrInvalidDecision     = errors.New("invalid decision")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// ValidationError describes rejected input with a message suitable for the caller.
type ValidationError struct {
	Field  string
	Reason error
}

// NewMissingField reports an absent or blank required field.
func NewMissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: ErrMissingField}
}

// NewInvalidIdentifier reports a malformed platform identifier.
func NewInvalidIdentifier(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: ErrInvalidIdentifier}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// ConfigurationError signals a missing setting and tells the owner how to fix it.
type ConfigurationError struct {
	Setting string
	Hint    string
}

func (e *ConfigurationError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s is not configured", e.Setting)
	}
	return fmt.Sprintf("%s is not configured: %s", e.Setting, e.Hint)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrNotConfigured
}
