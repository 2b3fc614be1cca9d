package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrNeedsSetup is returned when a provider the request depends on has no
	// credentials configured. Nothing is written before it is returned.
	ErrNeedsSetup = errors.New("needs setup")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match validation errors.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NeedsSetupError names the providers that must be configured before the
// request can run.
type NeedsSetupError struct {
	Missing []string
}

func (e *NeedsSetupError) Error() string {
	return fmt.Sprintf("%s: configure %s", ErrNeedsSetup, strings.Join(e.Missing, ", "))
}

// Unwrap lets errors.Is(err, ErrNeedsSetup) match.
func (e *NeedsSetupError) Unwrap() error {
	return ErrNeedsSetup
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
