package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner is an activity indicator. A Spinner created for a non-terminal
// stream does nothing.
type Spinner struct {
	s *spinner.Spinner
}

// StartSpinner starts a spinner showing message on w when caps reports a terminal.
func StartSpinner(w io.Writer, caps TerminalCapabilities, message string) *Spinner {
	if !caps.IsTTY {
		return &Spinner{}
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(
		spinner.CharSets[symbols.SpinnerSet],
		spinnerInterval,
		spinner.WithWriter(w),
		spinner.WithSuffix(" "+message),
	)
	s.Start()
	return &Spinner{s: s}
}

// Stop stops the spinner and clears its line. Safe to call more than once.
func (sp *Spinner) Stop() {
	if sp == nil || sp.s == nil {
		return
	}
	sp.s.Stop()
	sp.s = nil
}
