// Package shared tests exit codes, global flags and error reporting shared by both commands.
// Related: internal/cli/shared/constants.go, internal/cli/shared/flags.go, internal/cli/shared/handle.go
// Tags: cli, shared, exit-codes, errors, flags

package shared

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":          {err: nil, want: ExitSuccess},
		"exit error code 0":  {err: NewExitError(0), want: 0},
		"exit error code 1":  {err: NewExitError(1), want: 1},
		"generic error":      {err: errors.New("generic error"), want: ExitFailure},
		"wrapped exit error": {err: fmt.Errorf("wrapped: %w", NewExitError(7)), want: 7},
		"cli error":          {err: clierrors.UnknownCommand("x"), want: ExitFailure},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exit code 1", NewExitError(1).Error())
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err        error
		wantCode   int
		wantOutput string
	}{
		"nil": {
			err:      nil,
			wantCode: ExitSuccess,
		},
		"already reported": {
			err:      NewExitError(ExitFailure),
			wantCode: ExitFailure,
		},
		"usage error": {
			err:        clierrors.MissingVersionArgument(),
			wantCode:   ExitFailure,
			wantOutput: "extract-release-notes <version>",
		},
		"plain error": {
			err:        errors.New("disk full"),
			wantCode:   ExitFailure,
			wantOutput: "disk full",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			assert.Equal(t, tc.wantCode, HandleError(&buf, tc.err))
			if tc.wantOutput == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tc.wantOutput)
		})
	}
}

func TestAddGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	var flags GlobalFlags
	AddGlobalFlags(cmd, &flags)

	for _, name := range []string{"config", "debug", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s should exist", name)
	}

	require.NoError(t, cmd.PersistentFlags().Parse([]string{"--config", "x.yml", "--debug", "--no-color"}))
	assert.Equal(t, GlobalFlags{ConfigPath: "x.yml", Debug: true, NoColor: true}, flags)
}

func TestSetup(t *testing.T) {
	orig := color.NoColor
	t.Cleanup(func() { color.NoColor = orig })

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yml")
	require.NoError(t, os.WriteFile(good, []byte("project_name: widget\n"), 0o644))
	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("repo_url: nope\n"), 0o644))

	var stderr bytes.Buffer
	cfg, err := Setup(&GlobalFlags{ConfigPath: good, NoColor: true}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "widget", cfg.ProjectName)
	assert.True(t, color.NoColor)

	_, err = Setup(&GlobalFlags{ConfigPath: bad}, &stderr)
	require.Error(t, err)
	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Configuration, cliErr.Category)
}
