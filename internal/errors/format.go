package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel    = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg      = color.New(color.FgRed).SprintFunc()
	categoryLabel = color.New(color.FgYellow).SprintFunc()
	usageLabel    = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText     = color.New(color.FgCyan).SprintFunc()
	fixLabel      = color.New(color.FgGreen, color.Bold).SprintFunc()
	bullet        = color.New(color.FgGreen).SprintFunc()
)

// Format renders err as a headline followed by optional usage and
// remediation blocks, separated by blank lines. Colors follow color.NoColor.
func Format(err *CLIError) string {
	if err == nil {
		return ""
	}

	blocks := []string{
		fmt.Sprintf("%s [%s]: %s\n", errorLabel("Error"), categoryLabel(err.Category), errorMsg(err.Message)),
	}
	if err.Usage != "" {
		blocks = append(blocks, fmt.Sprintf("%s%s\n", usageLabel("Usage: "), usageText(err.Usage)))
	}
	if len(err.Remediation) > 0 {
		var sb strings.Builder
		sb.WriteString(fixLabel("To fix this:") + "\n")
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", bullet("•"), step)
		}
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n")
}

// Report writes err to w. Errors without a CLIError in their chain are shown
// as runtime errors with no remediation.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error(), cause: err}
	}
	fmt.Fprint(w, Format(cliErr))
}
