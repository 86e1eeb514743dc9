// Package update tests the update-changelog command tree against real go-git repositories.
// Related: internal/cli/update/root.go, internal/cli/update/update.go, internal/cli/update/release_notes.go
// Tags: cli, update-changelog, changelog, release-notes, git

package update

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	"github.com/ariel-frischer/relnotes/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// project is a repository plus the config and files the command works on.
type project struct {
	repo      *testutil.GitRepo
	config    string
	changelog string
}

func newProject(t *testing.T) *project {
	t.Helper()

	repo := testutil.NewGitRepo(t)
	dir := t.TempDir()
	p := &project{
		repo:      repo,
		config:    filepath.Join(dir, ".relnotes.yml"),
		changelog: filepath.Join(dir, "CHANGELOG.md"),
	}

	build := filepath.Join(dir, "CMakeLists.txt")
	require.NoError(t, os.WriteFile(build, []byte("project(widget VERSION 1.2.3)\n"), 0o644))

	cfg := fmt.Sprintf(`project_name: widget
repo_url: https://github.com/acme/widget
changelog_file: %s
build_file: %s
repo_path: %s
`, p.changelog, build, repo.Dir)
	require.NoError(t, os.WriteFile(p.config, []byte(cfg), 0o644))
	return p
}

func (p *project) run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(append([]string{"--config", p.config}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func (p *project) readChangelog(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(p.changelog)
	require.NoError(t, err)
	return string(data)
}

// seedReleased creates a tagged v1.0.0 followed by unreleased work.
func (p *project) seedReleased() {
	first := p.repo.Commit("feat: initial release")
	p.repo.Tag("v1.0.0", first)
	p.repo.Commit("feat(api): add streaming")
	p.repo.Commit("fix: handle empty input")
	p.repo.Commit("bump things")
}

func TestUpdate_CreatesChangelog(t *testing.T) {
	p := newProject(t)
	p.seedReleased()

	code, stdout, stderr := p.run()
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Updating changelog for version 1.2.3\n")
	assert.Contains(t, stdout, "Generating changelog from v1.0.0 to current HEAD...\n")
	assert.Contains(t, stdout, "Changelog updated successfully!")

	content := p.readChangelog(t)
	assert.True(t, strings.HasPrefix(content, changelog.Preamble+"## [Unreleased] - "))
	assert.Contains(t, content, "### Added\n- add streaming\n\n")
	assert.Contains(t, content, "### Fixed\n- handle empty input\n\n")
	assert.Contains(t, content, "### Other\n- bump things\n\n")
	assert.NotContains(t, content, "initial release")
}

func TestUpdate_PrependsToExisting(t *testing.T) {
	p := newProject(t)
	p.seedReleased()

	existing := "# Changelog\n\n## [1.0.0] - 2024-01-01\n\n### Added\n- initial release\n"
	require.NoError(t, os.WriteFile(p.changelog, []byte(existing), 0o644))

	code, _, stderr := p.run("update")
	require.Equal(t, 0, code, stderr)

	content := p.readChangelog(t)
	assert.True(t, strings.HasPrefix(content, "# Changelog\n\n## [Unreleased] - "))
	assert.True(t, strings.HasSuffix(content, "\n\n## [1.0.0] - 2024-01-01\n\n### Added\n- initial release\n"))
	assert.Less(t, strings.Index(content, "[Unreleased]"), strings.Index(content, "[1.0.0]"))
}

func TestUpdate_DryRun(t *testing.T) {
	p := newProject(t)
	p.seedReleased()

	code, stdout, stderr := p.run("update", "--dry-run")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "dry run")
	assert.Contains(t, stdout, "### Added\n- add streaming\n")
	assert.NotContains(t, stdout, "Changelog updated successfully!")
	assert.NoFileExists(t, p.changelog)
}

func TestUpdate_NoCommitsSinceTag(t *testing.T) {
	p := newProject(t)
	head := p.repo.Commit("feat: initial release")
	p.repo.Tag("v1.0.0", head)

	code, stdout, stderr := p.run()
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "No new commits since last tag\n")
	assert.NoFileExists(t, p.changelog)
}

func TestInit(t *testing.T) {
	tests := map[string]struct {
		existing   string
		wantStderr string
		wantCreate bool
	}{
		"creates missing changelog": {
			wantCreate: true,
		},
		"leaves existing changelog alone": {
			existing:   "# Changelog\n",
			wantStderr: "Changelog already exists. Use 'update' to add new entries.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := newProject(t)
			p.seedReleased()
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(p.changelog, []byte(tt.existing), 0o644))
			}

			code, _, stderr := p.run("init")
			require.Equal(t, 0, code, stderr)

			content := p.readChangelog(t)
			if tt.wantCreate {
				assert.True(t, strings.HasPrefix(content, changelog.Preamble))
				return
			}
			assert.Equal(t, tt.existing, content)
			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
}

func TestInit_WritesProjectConfig(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	first := repo.Commit("feat: initial release")
	repo.Tag("v1.0.0", first)
	repo.Commit("fix: handle empty input")

	t.Chdir(repo.Dir)
	require.NoError(t, os.WriteFile("CMakeLists.txt", []byte("project(llmcpp VERSION 1.0.1)\n"), 0o644))

	var out, errOut bytes.Buffer
	code := run([]string{"init"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "Created .relnotes.yml")
	assert.FileExists(t, "CHANGELOG.md")

	data, err := os.ReadFile(".relnotes.yml")
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), string(data))

	require.NoError(t, os.WriteFile(".relnotes.yml", []byte("project_name: llmcpp\n"), 0o644))
	out.Reset()
	errOut.Reset()
	code = run([]string{"init"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.NotContains(t, out.String(), "Created .relnotes.yml")

	data, err = os.ReadFile(".relnotes.yml")
	require.NoError(t, err)
	assert.Equal(t, "project_name: llmcpp\n", string(data))
}

func TestInit_DryRunWritesNothing(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	first := repo.Commit("feat: initial release")
	repo.Tag("v1.0.0", first)
	repo.Commit("fix: handle empty input")
	t.Chdir(repo.Dir)

	var out, errOut bytes.Buffer
	code := run([]string{"init", "--dry-run"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "### Fixed\n- handle empty input\n")
	assert.NoFileExists(t, ".relnotes.yml")
	assert.NoFileExists(t, "CHANGELOG.md")
}

func TestReleaseNotes(t *testing.T) {
	p := newProject(t)
	p.seedReleased()
	head := p.repo.Commit("docs: describe streaming")
	p.repo.Tag("v1.1.0", head)

	code, stdout, stderr := p.run("release-notes", "v1.0.0", "v1.1.0")
	require.Equal(t, 0, code, stderr)

	want := "## 🚀 What's Changed\n\n" +
		"### Added\n- add streaming\n\n" +
		"### Fixed\n- handle empty input\n\n" +
		"### Documentation\n- describe streaming\n\n" +
		"### Other\n- bump things\n\n" +
		"**Full Changelog**: https://github.com/acme/widget/compare/v1.0.0...v1.1.0\n\n"
	assert.Equal(t, want, stdout)
}

func TestReleaseNotes_EmptyRange(t *testing.T) {
	p := newProject(t)
	head := p.repo.Commit("feat: initial release")
	p.repo.Tag("v1.0.0", head)
	p.repo.Tag("v1.0.1", head)

	code, stdout, stderr := p.run("release-notes", "v1.0.0", "v1.0.1")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "No changes in this release.\n", stdout)
}

func TestReleaseNotes_UnknownTagWarns(t *testing.T) {
	p := newProject(t)
	p.repo.Commit("feat: initial release")

	code, stdout, stderr := p.run("release-notes", "v0.0.1", "HEAD")
	require.Equal(t, 0, code)
	assert.Equal(t, "No changes in this release.\n", stdout)
	assert.Contains(t, stderr, "Could not get commits:")
}

func TestDebugOutput(t *testing.T) {
	p := newProject(t)
	p.seedReleased()

	code, _, stderr := p.run("--debug", "update", "--dry-run")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stderr, "[debug git] LastTag: v1.0.0\n")
	assert.Contains(t, stderr, "[debug changelog] ")
	assert.NotContains(t, stderr, "[git]")
	assert.NotContains(t, stderr, "[changelog]")
}

func TestArgumentErrors(t *testing.T) {
	tests := map[string]struct {
		args       []string
		wantStderr []string
	}{
		"release-notes without tags": {
			args:       []string{"release-notes"},
			wantStderr: []string{"previous and current tags are required", "update-changelog release-notes <prev_tag> <current_tag>"},
		},
		"release-notes with one tag": {
			args:       []string{"release-notes", "v1.0.0"},
			wantStderr: []string{"previous and current tags are required"},
		},
		"unknown command": {
			args:       []string{"deploy"},
			wantStderr: []string{`unknown command "deploy"`, "update-changelog help"},
		},
		"unknown flag": {
			args:       []string{"--bogus"},
			wantStderr: []string{"unknown flag: --bogus"},
		},
		"dry-run on release-notes": {
			args:       []string{"release-notes", "--dry-run", "v1.0.0", "HEAD"},
			wantStderr: []string{"unknown flag: --dry-run", "update-changelog release-notes"},
		},
		"dry-run on version": {
			args:       []string{"version", "-n"},
			wantStderr: []string{"unknown shorthand flag: 'n' in -n"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := newProject(t)
			p.repo.Commit("feat: initial release")

			code, _, stderr := p.run(tt.args...)
			assert.Equal(t, 1, code)
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr, want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	p := newProject(t)

	code, stdout, stderr := p.run("version")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "Current version: 1.2.3\n", stdout)
}

func TestHelp(t *testing.T) {
	p := newProject(t)

	for _, args := range [][]string{{"help"}, {"-h"}, {"--help"}} {
		code, stdout, _ := p.run(args...)
		assert.Equal(t, 0, code, "args %v", args)
		assert.Contains(t, stdout, "release-notes", "args %v", args)
		assert.Contains(t, stdout, "update-changelog", "args %v", args)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("repo_url: not-a-url\n"), 0o644))

	var out, errOut bytes.Buffer
	code := run([]string{"--config", path, "version"}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Configuration Error")
	assert.Contains(t, errOut.String(), "repo_url")
}

func TestHelp_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("repo_url: not-a-url\n"), 0o644))

	for _, args := range [][]string{{"help"}, {"help", "release-notes"}, {"--help"}} {
		var out, errOut bytes.Buffer
		code := run(append([]string{"--config", path}, args...), &out, &errOut)
		assert.Equal(t, 0, code, "args %v: %s", args, errOut.String())
		assert.Contains(t, out.String(), "update-changelog", "args %v", args)
		assert.Empty(t, errOut.String(), "args %v", args)
	}
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "update-changelog [command]", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Example)

	for _, name := range []string{"update", "init", "release-notes", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	for _, flag := range []string{"config", "debug", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "flag %s", flag)
	}

	assert.Nil(t, rootCmd.PersistentFlags().Lookup("dry-run"))
	for _, cmd := range []*cobra.Command{rootCmd, updateCmd, initCmd} {
		assert.NotNil(t, cmd.Flags().Lookup("dry-run"), "command %s", cmd.Name())
	}
	for _, cmd := range []*cobra.Command{releaseNotesCmd, versionCmd} {
		assert.Nil(t, cmd.Flags().Lookup("dry-run"), "command %s", cmd.Name())
	}
}
