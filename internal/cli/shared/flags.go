package shared

import (
	"io"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GlobalFlags holds the persistent flags shared by both commands.
type GlobalFlags struct {
	ConfigPath string
	Debug      bool
	NoColor    bool
}

// AddGlobalFlags registers --config, --debug and --no-color on cmd.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.ConfigPath, "config", "c", "", "Path to project config file (default: .relnotes.yml or .relnotes.json)")
	pf.BoolVarP(&flags.Debug, "debug", "d", false, "Print debug logs to stderr")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
}

// Setup applies the global flags and loads configuration. Debug logging is
// installed before the config load so history operations can be traced.
func Setup(flags *GlobalFlags, stderr io.Writer) (*config.Configuration, error) {
	if flags.NoColor {
		color.NoColor = true
	}

	if flags.Debug {
		git.SetDebugLogger(output.DebugLogger(stderr, "git"))
		changelog.SetDebugLogger(output.DebugLogger(stderr, "changelog"))
	} else {
		git.SetDebugLogger(nil)
		changelog.SetDebugLogger(nil)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}
	return cfg, nil
}

// ResetFlags restores every flag in the command tree to its default so a
// package-level command can be executed more than once.
func ResetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		ResetFlags(sub)
	}
}
