package compiler

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific failure classes of a compile call.
type ErrorCode string

const (
	// ErrCodeUnknownComponent: a node references an unregistered component type.
	ErrCodeUnknownComponent ErrorCode = "unknown_component"

	// ErrCodeUnknownNodeReference: an edge endpoint names a missing node.
	ErrCodeUnknownNodeReference ErrorCode = "unknown_node_reference"

	// ErrCodeCyclicGraph: the topological sort cannot complete.
	ErrCodeCyclicGraph ErrorCode = "cyclic_graph"

	// ErrCodeMissingRequiredInput: a required port has neither a connection
	// nor a non-empty manual value.
	ErrCodeMissingRequiredInput ErrorCode = "missing_required_input"

	// ErrCodeMissingEntrypoint: no node references an entry component.
	ErrCodeMissingEntrypoint ErrorCode = "missing_entrypoint"

	// ErrCodeInvalidEntrypoint: the entry component is claimed by more than
	// one node, or the resolved entry ref does not map back to one.
	ErrCodeInvalidEntrypoint ErrorCode = "invalid_entrypoint"

	// ErrCodeSemanticValidationFailed: the holistic validator found errors.
	ErrCodeSemanticValidationFailed ErrorCode = "semantic_validation_failed"
)

// CompileError is the terminal error of a compile call. All codes are fatal;
// the compiler is stateless, so the caller corrects the graph and re-invokes.
type CompileError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	NodeID     string    `json:"node_id,omitempty"`
	Port       string    `json:"port,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	switch {
	case e.NodeID != "" && e.Port != "":
		msg = fmt.Sprintf("%s [node: %s, port: %s]: %s", e.Code, e.NodeID, e.Port, e.Message)
	case e.NodeID != "":
		msg = fmt.Sprintf("%s [node: %s]: %s", e.Code, e.NodeID, e.Message)
	}
	if e.Suggestion != "" {
		msg += " (" + e.Suggestion + ")"
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *CompileError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *CompileError) Is(target error) bool {
	var compileErr *CompileError
	if errors.As(target, &compileErr) {
		return e.Code == compileErr.Code
	}
	return false
}

// newError creates a CompileError with a formatted message.
func newError(code ErrorCode, format string, args ...any) *CompileError {
	return &CompileError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsCode reports whether err is a CompileError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		return compileErr.Code == code
	}
	return false
}

// ValidationIssue is a single error or warning produced by the holistic
// semantic validator.
type ValidationIssue struct {
	Node       string `json:"node,omitempty"`
	Field      string `json:"field,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// String renders the issue as a single report line.
func (i ValidationIssue) String() string {
	line := i.Message
	if i.Node != "" {
		line = fmt.Sprintf("node %s: %s", i.Node, line)
	}
	if i.Field != "" {
		line = fmt.Sprintf("%s (field: %s)", line, i.Field)
	}
	if i.Suggestion != "" {
		line = fmt.Sprintf("%s (%s)", line, i.Suggestion)
	}
	return line
}

// ValidationResult is the outcome of the holistic semantic validation pass.
// Errors abort compilation; warnings are surfaced but never block.
type ValidationResult struct {
	IsValid  bool              `json:"isValid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}
