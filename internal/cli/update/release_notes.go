package update

import (
	"fmt"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/spf13/cobra"
)

var releaseNotesCmd = &cobra.Command{
	Use:   "release-notes <prev_tag> <current_tag>",
	Short: "Print release notes for the commits between two tags",
	Long: `Print release notes for the commits between two tags.

Commits reachable from <current_tag> but not from <prev_tag> are grouped by
category, followed by a compare link. The notes are written to stdout.`,
	Example: `  update-changelog release-notes v1.0.0 v1.1.0 > notes.md`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return clierrors.MissingReleaseTags()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		notes := newGenerator(cmd).ReleaseNotes(args[0], args[1])
		fmt.Fprintln(cmd.OutOrStdout(), notes)
		return nil
	},
}
