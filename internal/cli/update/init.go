package update

import (
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/progress"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the changelog and project config if they do not exist",
	Long: `Create the changelog and project config if they do not exist.

The new changelog starts with the Keep a Changelog preamble followed by an
[Unreleased] entry. When no --config is given and neither .relnotes.yml nor
.relnotes.json exists, a commented .relnotes.yml with the defaults is written
too. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runUpdate(cmd, true); err != nil {
			return err
		}
		if dryRun || globalFlags.ConfigPath != "" || config.HasProjectConfig() {
			return nil
		}
		return writeProjectConfig(cmd)
	},
}

func writeProjectConfig(cmd *cobra.Command) error {
	path := config.ProjectConfigPath()
	created, err := config.WriteDefaultConfig(path)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+path,
			"Check that the working directory is writable")
	}
	if created {
		stdout := cmd.OutOrStdout()
		progress.NewPrinter(stdout, cmd.ErrOrStderr(), progress.CapabilitiesOf(stdout)).
			Successf("Created %s", path)
	}
	return nil
}
