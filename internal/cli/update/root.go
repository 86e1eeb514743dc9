// Package update implements the update-changelog command tree.
package update

import (
	"io"
	"os"

	"github.com/ariel-frischer/relnotes/internal/cli/shared"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/version"
	"github.com/spf13/cobra"
)

var (
	globalFlags shared.GlobalFlags
	dryRun      bool

	// cfg is loaded by the root PersistentPreRunE before any command runs.
	cfg *config.Configuration
)

var rootCmd = &cobra.Command{
	Use:   "update-changelog [command]",
	Short: "Generate CHANGELOG.md entries and release notes from conventional commits",
	Long: `Generate CHANGELOG.md entries and release notes from conventional commits.

Commits since the last tag are parsed as conventional commits
(feat, fix, docs, style, refactor, perf, test, build, ci, chore, revert),
grouped into Keep a Changelog categories and prepended to the changelog
as an [Unreleased] entry.

Running without a command is the same as 'update'.`,
	Example: `  # Add an [Unreleased] entry for commits since the last tag
  update-changelog

  # Preview the entry without writing
  update-changelog update --dry-run

  # Create CHANGELOG.md if it does not exist
  update-changelog init

  # Print release notes for a tag range
  update-changelog release-notes v1.0.0 v1.1.0

  # Print the version declared in CMakeLists.txt
  update-changelog version`,
	Version:       version.String(),
	SilenceErrors: true,
	SilenceUsage:  true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return clierrors.UnknownCommand(args[0])
		}
		return nil
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// help must keep working while the config is broken.
		if cmd.Name() == "help" {
			return nil
		}
		loaded, err := shared.Setup(&globalFlags, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, false)
	},
}

func init() {
	shared.AddGlobalFlags(rootCmd, &globalFlags)
	for _, cmd := range []*cobra.Command{rootCmd, updateCmd, initCmd} {
		cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the changelog entry instead of writing it")
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			"Run 'update-changelog help' for usage information")
	})

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(releaseNotesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs update-changelog with the process arguments and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	shared.ResetFlags(rootCmd)
	cfg = nil

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return shared.HandleError(stderr, rootCmd.Execute())
}
