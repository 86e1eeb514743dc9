// Package extract implements the extract-release-notes command.
package extract

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/cli/shared"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/version"
	"github.com/spf13/cobra"
)

var globalFlags shared.GlobalFlags

var rootCmd = &cobra.Command{
	Use:   "extract-release-notes <version>",
	Short: "Print the changelog section for a version as release notes",
	Long: `Print the changelog section for a version as release notes.

The section headed "## [<version>]" is printed under a "What's Changed"
heading. When the section is empty, or the version is not in the changelog,
a short release block linking to the release tag is printed instead.

The version is matched as written first. When no section matches and the
version starts with "v", the lookup is retried without it.`,
	Example: `  # Notes for a GitHub release
  extract-release-notes 1.2.0 > notes.md

  # Same, with the tag name
  extract-release-notes v1.2.0`,
	Version:       version.String(),
	SilenceErrors: true,
	SilenceUsage:  true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return clierrors.MissingVersionArgument()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0])
	},
}

func init() {
	shared.AddGlobalFlags(rootCmd, &globalFlags)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
}

func runExtract(cmd *cobra.Command, rawVersion string) error {
	cfg, err := shared.Setup(&globalFlags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	path := cfg.ChangelogPath()
	store := changelog.NewFileStore(path)
	exists, err := store.Exists()
	if err != nil {
		return clierrors.ChangelogIOError(path, err)
	}
	if !exists {
		return clierrors.ChangelogNotFound(path)
	}

	content, err := store.Read()
	if err != nil {
		return clierrors.ChangelogIOError(path, err)
	}

	notes := changelog.ReleaseNotesFor(content, rawVersion, cfg.RepoURL)
	fmt.Fprintln(cmd.OutOrStdout(), notes)
	return nil
}

// Execute runs extract-release-notes with the process arguments and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	shared.ResetFlags(rootCmd)

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return shared.HandleError(stderr, rootCmd.Execute())
}
