package testutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// Binaries built from ./cmd for end-to-end tests.
const (
	UpdateChangelogBinary     = "update-changelog"
	ExtractReleaseNotesBinary = "extract-release-notes"
)

var (
	// binDir caches the directory holding the built binaries.
	binDir    string
	buildOnce sync.Once
	buildErr  error
)

// E2EEnv provides an isolated environment for E2E testing: a git repository
// created with the git CLI in a temp directory, used as the working directory
// of the built binaries, with a sanitized environment.
type E2EEnv struct {
	t       *testing.T
	repoDir string
	env     map[string]string
	clock   time.Time
}

// CommandResult captures the result of running a command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv builds the binaries (once per test process) and initializes an
// empty git repository.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	buildOnce.Do(func() {
		binDir, buildErr = buildBinaries()
	})
	if buildErr != nil {
		t.Fatalf("building binaries: %v", buildErr)
	}

	e := &E2EEnv{
		t:       t,
		repoDir: t.TempDir(),
		env:     map[string]string{},
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	e.git("init", "-q")
	e.git("config", "user.email", "test@test.com")
	e.git("config", "user.name", "Test")
	e.git("config", "commit.gpgsign", "false")
	e.git("config", "tag.gpgsign", "false")
	return e
}

func buildBinaries() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	dir, err := os.MkdirTemp("", "relnotes-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	for _, name := range []string{UpdateChangelogBinary, ExtractReleaseNotesBinary} {
		cmd := exec.Command("go", "build", "-o", filepath.Join(dir, name), "./cmd/"+name)
		cmd.Dir = repoRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			return "", fmt.Errorf("building %s: %w\nOutput: %s", name, err, output)
		}
	}
	return dir, nil
}

// RepoDir returns the repository root, which is also the working directory of Run.
func (e *E2EEnv) RepoDir() string {
	return e.repoDir
}

// Setenv adds a variable to the environment of subsequent runs.
func (e *E2EEnv) Setenv(key, value string) {
	e.env[key] = value
}

// WriteFile writes a file relative to the repository root.
func (e *E2EEnv) WriteFile(name, content string) {
	e.t.Helper()

	path := filepath.Join(e.repoDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
}

// ReadFile reads a file relative to the repository root.
func (e *E2EEnv) ReadFile(name string) string {
	e.t.Helper()

	data, err := os.ReadFile(filepath.Join(e.repoDir, name))
	if err != nil {
		e.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// Commit creates an empty commit with message and returns its hash.
func (e *E2EEnv) Commit(message string) string {
	e.t.Helper()

	e.clock = e.clock.Add(time.Minute)
	date := e.clock.Format(time.RFC3339)
	cmd := exec.Command("git", "commit", "-q", "--allow-empty", "-m", message)
	cmd.Dir = e.repoDir
	cmd.Env = append(os.Environ(), "GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date)
	if output, err := cmd.CombinedOutput(); err != nil {
		e.t.Fatalf("git commit failed: %v\nOutput: %s", err, output)
	}
	return e.git("rev-parse", "HEAD")
}

// Tag creates an annotated tag at HEAD.
func (e *E2EEnv) Tag(name string) {
	e.t.Helper()
	e.git("tag", "-a", name, "-m", "release "+name)
}

// Subjects returns the %s subject of every commit in revRange, oldest first,
// as printed by the git CLI.
func (e *E2EEnv) Subjects(revRange string) []string {
	e.t.Helper()

	cmd := exec.Command("git", "log", "--reverse", "--pretty=format:%s", revRange)
	cmd.Dir = e.repoDir
	output, err := cmd.Output()
	if err != nil {
		e.t.Fatalf("git log %s failed: %v", revRange, err)
	}
	if len(output) == 0 {
		return nil
	}
	return strings.Split(string(output), "\n")
}

func (e *E2EEnv) git(args ...string) string {
	e.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = e.repoDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
	return string(bytes.TrimSpace(output))
}

// Run executes one of the built binaries in the repository.
func (e *E2EEnv) Run(binary string, args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(filepath.Join(binDir, binary), args...)
	cmd.Dir = e.repoDir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}
	return result
}

// buildIsolatedEnv keeps only variables needed to run, so RELNOTES_* settings
// of the developer never leak into a test.
func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"HOME=" + e.repoDir,
		"NO_COLOR=1",
	}

	safeVars := []string{"PATH", "TERM", "LANG", "LC_ALL", "TMPDIR", "TMP", "TEMP"}
	for _, key := range safeVars {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	for key, val := range e.env {
		env = append(env, key+"="+val)
	}
	return env
}
