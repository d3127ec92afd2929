package errors

import (
	"errors"
	"fmt"
)

// Fault kinds surfaced by the contact pipeline. Callers wrap them with %w and
// the HTTP boundary maps them to a status with errors.Is.

var (
	// ErrInvalidInput indicates a malformed or incomplete submission
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigMissing indicates required delivery configuration is absent
	ErrConfigMissing = errors.New("configuration missing")

	// ErrProvider indicates the email provider rejected or failed the request
	ErrProvider = errors.New("provider failure")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// InvalidInputError creates an invalid input error with context
func InvalidInputError(reason string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%s: %w: %w", reason, ErrInvalidInput, cause)
	}
	return fmt.Errorf("%s: %w", reason, ErrInvalidInput)
}

// ConfigMissingError names the absent configuration keys
func ConfigMissingError(keys ...string) error {
	return fmt.Errorf("%w: %v", ErrConfigMissing, keys)
}

// InternalError creates an internal error with context
func InternalError(msg string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%s: %w: %w", msg, ErrInternal, cause)
	}
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
