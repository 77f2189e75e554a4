// Package errors provides domain-specific error types for m3cd.
//
// This package defines structured errors with error codes, making it easier to handle
// and test different error conditions consistently across the application.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeConfig indicates a merge job file error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeMalformedStruct indicates a struct string with unbalanced delimiters,
	// a missing '=' or trailing content after the closing delimiter.
	ErrCodeMalformedStruct ErrorCode = "MALFORMED_STRUCT"

	// ErrCodeUnsupportedGame indicates a game with no defined config layout.
	ErrCodeUnsupportedGame ErrorCode = "UNSUPPORTED_GAME"

	// ErrCodeDelta indicates an unreadable or malformed delta file.
	ErrCodeDelta ErrorCode = "DELTA_ERROR"

	// ErrCodeStorage indicates a failure reading or writing config assets.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is; only the code is compared.
var (
	ErrMalformedStruct = &Error{Code: ErrCodeMalformedStruct}
	ErrUnsupportedGame = &Error{Code: ErrCodeUnsupportedGame}
	ErrDelta           = &Error{Code: ErrCodeDelta}
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a new job file error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewMalformedStructError reports a struct string that could not be parsed.
// The offending input is quoted in the message since these strings come from
// third-party mod files.
func NewMalformedStructError(input string, reason string) *Error {
	return New(ErrCodeMalformedStruct, fmt.Sprintf("malformed struct %q: %s", input, reason))
}

// NewUnsupportedGameError reports a game that has no config layout for the requested source.
func NewUnsupportedGameError(game string, source string) *Error {
	return New(ErrCodeUnsupportedGame, fmt.Sprintf("game %s has no %s config layout", game, source))
}

// NewDeltaError creates a new delta file error.
func NewDeltaError(message string, cause error) *Error {
	return Wrap(ErrCodeDelta, message, cause)
}

// NewStorageError creates a new storage error.
func NewStorageError(message string, cause error) *Error {
	return Wrap(ErrCodeStorage, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// CodeOf returns the code of the first *Error in err's chain, or
// ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
