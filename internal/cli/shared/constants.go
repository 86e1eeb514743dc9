// Package shared provides constants, flags and error handling used by both
// relnotes command trees.
package shared

import (
	"errors"
	"fmt"
)

// Exit codes for the relnotes commands. Every failure exits non-zero with the same code
// so shell callers only need to test for success.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates any failure: bad arguments, bad config or a runtime error
	ExitFailure = 1
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the command exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
