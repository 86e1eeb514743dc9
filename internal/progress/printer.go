package progress

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes status lines. Informational and success lines go to out;
// warnings go to errOut so piped release notes stay clean.
type Printer struct {
	out     io.Writer
	errOut  io.Writer
	symbols ProgressSymbols
}

// NewPrinter creates a Printer using the symbol set for caps.
func NewPrinter(out, errOut io.Writer, caps TerminalCapabilities) *Printer {
	return &Printer{
		out:     out,
		errOut:  errOut,
		symbols: SelectSymbols(caps),
	}
}

// Infof prints a plain status line.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Successf prints a status line prefixed with the success mark.
func (p *Printer) Successf(format string, args ...any) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(p.out, "%s %s\n", green(p.symbols.Checkmark), fmt.Sprintf(format, args...))
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(p.errOut, "%s %s\n", yellow(p.symbols.Warning), fmt.Sprintf(format, args...))
}
