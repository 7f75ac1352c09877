// Package errors provides the standardized error type shared by the CLI and
// library layers. Storage, lookup, and LLM failures are all reported as
// AppErrors so every surface formats and exits the same way.
package errors

import (
	"fmt"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Storage errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"

	// LLM boundary errors
	ErrCodeExternalAPI       ErrorCode = "EXTERNAL_API_ERROR"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrCodeSchemaViolation   ErrorCode = "SCHEMA_VIOLATION"
	ErrCodeInvalidKind       ErrorCode = "INVALID_ANALYSIS_KIND"

	// Command errors
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"
)

// AppError is a standardized application error carrying a code, a
// human-readable message, and an optional cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches details to the error.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with application error context.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// GetAppError extracts an AppError from an error, or converts it to one.
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeCommandFailed, err.Error())
}

// Common constructors for frequently used errors.

func ValidationError(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func NotFoundError(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("storage operation failed: %s", operation))
}

func ExternalAPIError(err error) *AppError {
	return Wrap(err, ErrCodeExternalAPI, "completion API request failed")
}
