package update

import (
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the project version declared in the build file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := version.BuildFile{Path: cfg.BuildFile, Project: cfg.ProjectName}.Version()
		fmt.Fprintf(cmd.OutOrStdout(), "Current version: %s\n", v)
		return nil
	},
}
