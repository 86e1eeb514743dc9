// Package progress renders user-facing status lines and a spinner for the
// relnotes commands, degrading to plain ASCII output when the terminal cannot
// show Unicode or color.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the output stream can render.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols is the symbol set used for status lines and the spinner.
type ProgressSymbols struct {
	Checkmark  string
	Warning    string
	SpinnerSet int
}

// DetectTerminalCapabilitiesFor detects terminal features of f.
// Checks: isatty, NO_COLOR env, RELNOTES_ASCII env, terminal width.
func DetectTerminalCapabilitiesFor(f *os.File) TerminalCapabilities {
	fd := int(f.Fd())
	isTTY := term.IsTerminal(fd)

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("RELNOTES_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: !forceASCII,
		Width:           width,
	}
}

// CapabilitiesOf detects the capabilities of w. Writers that are not files,
// such as buffers in tests, are treated as non-terminal Unicode streams.
func CapabilitiesOf(w io.Writer) TerminalCapabilities {
	if f, ok := w.(*os.File); ok {
		return DetectTerminalCapabilitiesFor(f)
	}
	return TerminalCapabilities{
		SupportsUnicode: os.Getenv("RELNOTES_ASCII") != "1",
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities.
// Unicode: emoji status marks with braille spinner (set 14). ASCII: [OK] with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✅",
			Warning:    "⚠️ ",
			SpinnerSet: 14, // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Warning:    "Warning:",
		SpinnerSet: 9, // | / - \
	}
}
