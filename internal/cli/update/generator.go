package update

import (
	"io"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/progress"
	"github.com/ariel-frischer/relnotes/internal/version"
	"github.com/spf13/cobra"
)

const spinnerMessage = "Reading commit history"

// newGenerator wires the configured repository, build file and changelog
// into a Generator that reports through a progress.Printer.
func newGenerator(cmd *cobra.Command) *changelog.Generator {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	return &changelog.Generator{
		History: &spinningHistory{
			History: git.NewRepository(cfg.RepoPath),
			w:       stderr,
			caps:    progress.CapabilitiesOf(stderr),
		},
		Store:    changelog.NewFileStore(cfg.ChangelogPath()),
		Version:  version.BuildFile{Path: cfg.BuildFile, Project: cfg.ProjectName},
		Reporter: progress.NewPrinter(stdout, stderr, progress.CapabilitiesOf(stdout)),
		RepoURL:  cfg.RepoURL,
	}
}

// spinningHistory shows a spinner while history walks are running.
type spinningHistory struct {
	changelog.History
	w    io.Writer
	caps progress.TerminalCapabilities
}

func (h *spinningHistory) LastTag() (string, error) {
	sp := progress.StartSpinner(h.w, h.caps, spinnerMessage)
	defer sp.Stop()
	return h.History.LastTag()
}

func (h *spinningHistory) CommitsBetween(from, to string) ([]changelog.Commit, error) {
	sp := progress.StartSpinner(h.w, h.caps, spinnerMessage)
	defer sp.Stop()
	return h.History.CommitsBetween(from, to)
}
