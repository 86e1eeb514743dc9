// Package output provides terminal output formatting utilities for the relnotes commands.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// DebugLogger returns a printf-style logger writing dim, prefixed lines to w.
// The component name (e.g. "git") appears in the prefix.
func DebugLogger(w io.Writer, component string) func(format string, args ...any) {
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	prefix := magenta("[debug " + component + "]")
	return func(format string, args ...any) {
		fmt.Fprintf(w, "%s %s\n", prefix, dim(fmt.Sprintf(format, args...)))
	}
}

// PrintPreview prints text between labelled separators, used by --dry-run to
// show a changelog entry without writing it.
func PrintPreview(out io.Writer, label, text string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	title := " " + label + " "
	lineLen := (GetTerminalWidth() - len(title)) / 2
	if lineLen < 3 {
		lineLen = 3
	}
	line := strings.Repeat("─", lineLen)

	fmt.Fprintf(out, "%s%s%s\n", cyan(line), cyan(title), cyan(line))
	fmt.Fprint(out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, cyan(strings.Repeat("─", 2*lineLen+len(title))))
}
