package internal

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmzchao/studio-sub005/internal/compiler"
	"github.com/fmzchao/studio-sub005/internal/types"
)

// Exit code constants for the CLI
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitCompileError indicates the graph failed to compile
	ExitCompileError = 2
	// ExitTimeout indicates the operation timed out
	ExitTimeout = 3
	// ExitCancelled indicates the operation was cancelled
	ExitCancelled = 4
	// ExitConfigError indicates a configuration error
	ExitConfigError = 10
	// ExitLoadError indicates a graph or manifest file could not be loaded
	ExitLoadError = 11
)

// CLIError represents a CLI-specific error with an exit code
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLIError with the given code and message
func NewCLIError(code int, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// WrapError creates a new CLIError wrapping an existing error
func WrapError(code int, message string, err error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// HandleError handles an error and returns the appropriate exit code.
// It also prints the error message to the command's error output.
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		cmd.PrintErrln("Operation cancelled")
		return ExitCancelled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		cmd.PrintErrln("Operation timed out")
		return ExitTimeout
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		cmd.PrintErrln("Error:", cliErr.Message)
		if cliErr.Cause != nil {
			verboseFlag := cmd.Flag("verbose")
			if verboseFlag != nil && verboseFlag.Changed {
				cmd.PrintErrln("Cause:", cliErr.Cause)
			}
		}
		return cliErr.Code
	}

	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		cmd.PrintErrln("Error:", compileErr.Error())
		return ExitCompileError
	}

	var studioErr *types.StudioError
	if errors.As(err, &studioErr) {
		cmd.PrintErrln("Error:", studioErr.Error())
		return mapStudioErrorToExitCode(studioErr)
	}

	cmd.PrintErrln("Error:", err)
	return ExitError
}

// mapStudioErrorToExitCode maps StudioError codes to CLI exit codes
func mapStudioErrorToExitCode(err *types.StudioError) int {
	switch err.Code {
	case types.GRAPH_LOAD_FAILED,
		types.GRAPH_PARSE_FAILED,
		types.GRAPH_VALIDATION_FAILED,
		types.MANIFEST_LOAD_FAILED,
		types.MANIFEST_PARSE_FAILED,
		types.MANIFEST_VALIDATION_FAILED:
		return ExitLoadError
	case types.REGISTRY_COMPONENT_EXISTS,
		types.REGISTRY_COMPONENT_NOT_FOUND,
		types.REGISTRY_VALIDATION_FAILED:
		return ExitConfigError
	default:
		return ExitError
	}
}
