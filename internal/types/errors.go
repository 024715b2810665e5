package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for studio framework errors.
type ErrorCode string

// Registry error codes
const (
	REGISTRY_COMPONENT_EXISTS    ErrorCode = "REGISTRY_COMPONENT_EXISTS"
	REGISTRY_COMPONENT_NOT_FOUND ErrorCode = "REGISTRY_COMPONENT_NOT_FOUND"
	REGISTRY_VALIDATION_FAILED   ErrorCode = "REGISTRY_VALIDATION_FAILED"
)

// Manifest error codes
const (
	MANIFEST_LOAD_FAILED       ErrorCode = "MANIFEST_LOAD_FAILED"
	MANIFEST_PARSE_FAILED      ErrorCode = "MANIFEST_PARSE_FAILED"
	MANIFEST_VALIDATION_FAILED ErrorCode = "MANIFEST_VALIDATION_FAILED"
)

// Graph document error codes
const (
	GRAPH_LOAD_FAILED       ErrorCode = "GRAPH_LOAD_FAILED"
	GRAPH_PARSE_FAILED      ErrorCode = "GRAPH_PARSE_FAILED"
	GRAPH_VALIDATION_FAILED ErrorCode = "GRAPH_VALIDATION_FAILED"
)

// StudioError represents a structured error with error code, message, and
// optional cause. It supports error wrapping for inspection with errors.Is/As.
type StudioError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *StudioError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *StudioError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a StudioError with the same Code.
func (e *StudioError) Is(target error) bool {
	var studioErr *StudioError
	if errors.As(target, &studioErr) {
		return e.Code == studioErr.Code
	}
	return false
}

// NewError creates a new StudioError with the given code and message.
func NewError(code ErrorCode, message string) *StudioError {
	return &StudioError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf creates a new StudioError with a formatted message.
func NewErrorf(code ErrorCode, format string, args ...any) *StudioError {
	return &StudioError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a new StudioError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *StudioError {
	return &StudioError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err carries the given error code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	var studioErr *StudioError
	if errors.As(err, &studioErr) {
		return studioErr.Code == code
	}
	return false
}
