// Package errors provides the categorized errors reported by update-changelog
// and extract-release-notes. Each error carries remediation steps printed
// under the message, and argument errors also carry the correct usage line.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory groups errors by what the user has to fix.
type ErrorCategory int

const (
	// Argument errors come from missing or unrecognized command-line input.
	Argument ErrorCategory = iota
	// Configuration errors come from .relnotes.yml, .env or RELNOTES_* values.
	Configuration
	// Prerequisite errors mean a file the command reads does not exist yet.
	Prerequisite
	// Runtime errors are failures while reading history or the changelog.
	Runtime
)

// String returns the label shown between brackets in reports.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Prerequisite:
		return "Prerequisite Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is an error reported to the user with a category and the steps
// that resolve it.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Usage       string
	Remediation []string

	// cause is the underlying error, if any, kept for errors.Is and errors.As.
	cause error
}

func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the error the CLIError was built from.
func (e *CLIError) Unwrap() error {
	return e.cause
}

// NewArgumentError creates an argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage creates an argument error that shows usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// NewPrerequisiteError creates a prerequisite error.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Prerequisite, Message: message, Remediation: remediation}
}

// WrapWithMessage reports err under category as "message: err". It returns
// nil for a nil err.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		cause:       err,
	}
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
