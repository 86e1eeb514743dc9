package update

import (
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Prepend an [Unreleased] entry for commits since the last tag",
	Long: `Prepend an [Unreleased] entry for commits since the last tag.

The range starts at the most recent tag reachable from HEAD. Without tags it
starts at the root commit, and falls back to HEAD~10 when neither resolves.
A missing changelog is created with the Keep a Changelog preamble.`,
	Example: `  update-changelog update
  update-changelog update --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, false)
	},
}

func runUpdate(cmd *cobra.Command, initOnly bool) error {
	gen := newGenerator(cmd)
	opts := changelog.UpdateOptions{DryRun: dryRun}

	var (
		result changelog.UpdateResult
		err    error
	)
	if initOnly {
		result, err = gen.Init(opts)
	} else {
		result, err = gen.Update(opts)
	}
	if err != nil {
		return clierrors.ChangelogIOError(cfg.ChangelogPath(), err)
	}

	if result.Status == changelog.StatusDryRun {
		output.PrintPreview(cmd.OutOrStdout(), fmt.Sprintf("dry run: %s", cfg.ChangelogPath()), result.Entry)
	}
	return nil
}
