package shared

import (
	"errors"
	"io"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

// HandleError reports err on w and returns the exit code for it.
// A bare ExitError has already been reported by the command and prints nothing.
func HandleError(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		clierrors.Report(w, err)
	}
	return ExitCode(err)
}
