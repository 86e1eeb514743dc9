package changelog

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHistory is an in-memory History.
type fakeHistory struct {
	lastTag    string
	lastTagErr error
	root       string
	rootErr    error
	commits    []Commit
	commitsErr error

	calls []string
}

func (f *fakeHistory) LastTag() (string, error) {
	return f.lastTag, f.lastTagErr
}

func (f *fakeHistory) InitialCommit() (string, error) {
	return f.root, f.rootErr
}

func (f *fakeHistory) CommitsBetween(from, to string) ([]Commit, error) {
	f.calls = append(f.calls, from+".."+to)
	return f.commits, f.commitsErr
}

type fixedVersion string

func (v fixedVersion) Version() string { return string(v) }

// recordingReporter keeps every status line with its level.
type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Infof(format string, args ...any) {
	r.lines = append(r.lines, "info: "+fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Successf(format string, args ...any) {
	r.lines = append(r.lines, "success: "+fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warnf(format string, args ...any) {
	r.lines = append(r.lines, "warn: "+fmt.Sprintf(format, args...))
}

func newTestGenerator(h History, store Store) (*Generator, *recordingReporter) {
	reporter := &recordingReporter{}
	return &Generator{
		History:  h,
		Store:    store,
		Version:  fixedVersion("1.0.4"),
		Reporter: reporter,
		RepoURL:  "https://github.com/acme/llmcpp",
		Now:      func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
	}, reporter
}

func TestGenerator_Update_CreatesChangelog(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		lastTag: "v1.0.3",
		commits: []Commit{
			{Hash: "aaa", Message: "feat: json schema builder"},
			{Hash: "bbb", Message: "fix(http): retry on 429"},
		},
	}
	store := NewMemoryStore()
	gen, reporter := newTestGenerator(history, store)

	result, err := gen.Update(UpdateOptions{})
	require.NoError(t, err)

	assert.Equal(t, StatusCreated, result.Status)
	assert.Equal(t, "v1.0.3", result.Since)
	assert.Equal(t, 2, result.Commits)
	assert.Equal(t, []string{"v1.0.3..HEAD"}, history.calls)

	want := Preamble +
		"## [Unreleased] - 2024-06-01\n\n" +
		"### Added\n- json schema builder\n\n" +
		"### Fixed\n- retry on 429\n\n"
	assert.Equal(t, want, store.Content())

	assert.Equal(t, []string{
		"info: Updating changelog for version 1.0.4",
		"info: Generating changelog from v1.0.3 to current HEAD...",
		"success: Changelog updated successfully!",
	}, reporter.lines)
}

func TestGenerator_Update_PrependsToExisting(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		lastTag: "v1.0.3",
		commits: []Commit{{Hash: "aaa", Message: "Bump version"}},
	}
	store := NewMemoryStoreWith("# Changelog\n\n## [1.0.3] - 2024-05-01\n\n### Fixed\n- old\n")
	gen, _ := newTestGenerator(history, store)

	result, err := gen.Update(UpdateOptions{})
	require.NoError(t, err)

	assert.Equal(t, StatusUpdated, result.Status)
	assert.Equal(t, "# Changelog\n"+
		"\n## [Unreleased] - 2024-06-01\n\n### Other\n- Bump version\n\n"+
		"\n"+
		"\n## [1.0.3] - 2024-05-01\n\n### Fixed\n- old\n", store.Content())
}

func TestGenerator_Update_RangeStart(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		history   *fakeHistory
		wantSince string
	}{
		"last tag": {
			history:   &fakeHistory{lastTag: "v2.0.0", root: "root"},
			wantSince: "v2.0.0",
		},
		"no tags falls back to initial commit": {
			history:   &fakeHistory{lastTagErr: errors.New("no tags"), root: "abc123"},
			wantSince: "abc123",
		},
		"nothing resolves": {
			history:   &fakeHistory{lastTagErr: errors.New("no tags"), rootErr: errors.New("empty repo")},
			wantSince: "HEAD~10",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			gen, _ := newTestGenerator(tt.history, NewMemoryStore())
			result, err := gen.Update(UpdateOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSince, result.Since)
			assert.Equal(t, []string{tt.wantSince + "..HEAD"}, tt.history.calls)
		})
	}
}

func TestGenerator_Update_NoCommits(t *testing.T) {
	t.Parallel()

	store := NewMemoryStoreWith("# Changelog\n")
	gen, reporter := newTestGenerator(&fakeHistory{lastTag: "v1.0.0"}, store)

	result, err := gen.Update(UpdateOptions{})
	require.NoError(t, err)

	assert.Equal(t, StatusNoCommits, result.Status)
	assert.Equal(t, "# Changelog\n", store.Content(), "store untouched")
	assert.Contains(t, reporter.lines, "info: No new commits since last tag")
}

func TestGenerator_Update_HistoryFailureDegrades(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	gen, reporter := newTestGenerator(&fakeHistory{
		lastTag:    "v1.0.0",
		commitsErr: errors.New("bad revision"),
	}, store)

	result, err := gen.Update(UpdateOptions{})
	require.NoError(t, err)

	assert.Equal(t, StatusNoCommits, result.Status)
	assert.Contains(t, reporter.lines, "warn: Could not get commits: bad revision")
	exists, _ := store.Exists()
	assert.False(t, exists)
}

func TestGenerator_Update_DryRun(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	gen, _ := newTestGenerator(&fakeHistory{
		lastTag: "v1.0.0",
		commits: []Commit{{Hash: "a", Message: "test: cover parser"}},
	}, store)

	result, err := gen.Update(UpdateOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, StatusDryRun, result.Status)
	assert.Equal(t, "## [Unreleased] - 2024-06-01\n\n### Testing\n- cover parser\n\n", result.Entry)
	exists, _ := store.Exists()
	assert.False(t, exists)
}

type failingStore struct {
	MemoryStore
}

func (failingStore) Write(string) error { return errors.New("disk full") }

func TestGenerator_Update_StoreFailure(t *testing.T) {
	t.Parallel()

	gen, _ := newTestGenerator(&fakeHistory{
		lastTag: "v1.0.0",
		commits: []Commit{{Hash: "a", Message: "feat: x"}},
	}, &failingStore{})

	_, err := gen.Update(UpdateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestGenerator_Init(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		lastTag: "v1.0.0",
		commits: []Commit{{Hash: "a", Message: "feat: x"}},
	}

	t.Run("existing changelog is left alone", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStoreWith("# Changelog\n")
		gen, reporter := newTestGenerator(&fakeHistory{}, store)

		result, err := gen.Init(UpdateOptions{})
		require.NoError(t, err)
		assert.Equal(t, StatusExists, result.Status)
		assert.Equal(t, "# Changelog\n", store.Content())
		assert.Equal(t, []string{"warn: Changelog already exists. Use 'update' to add new entries."}, reporter.lines)
	})

	t.Run("missing changelog is created", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		gen, _ := newTestGenerator(history, store)

		result, err := gen.Init(UpdateOptions{})
		require.NoError(t, err)
		assert.Equal(t, StatusCreated, result.Status)
		assert.Contains(t, store.Content(), "### Added\n- x\n")
	})
}

func TestGenerator_ReleaseNotes(t *testing.T) {
	t.Parallel()

	t.Run("empty range", func(t *testing.T) {
		t.Parallel()

		history := &fakeHistory{}
		gen, _ := newTestGenerator(history, NewMemoryStore())
		assert.Equal(t, "No changes in this release.", gen.ReleaseNotes("v1.0.3", "v1.0.4"))
		assert.Equal(t, []string{"v1.0.3..v1.0.4"}, history.calls)
	})

	t.Run("failed range", func(t *testing.T) {
		t.Parallel()

		gen, reporter := newTestGenerator(&fakeHistory{commitsErr: errors.New("unknown revision")}, NewMemoryStore())
		assert.Equal(t, NoChangesMessage, gen.ReleaseNotes("nope", "v1.0.4"))
		assert.Len(t, reporter.lines, 1)
	})

	t.Run("commits", func(t *testing.T) {
		t.Parallel()

		gen, _ := newTestGenerator(&fakeHistory{commits: []Commit{
			{Hash: "a", Message: "perf: pool connections"},
		}}, NewMemoryStore())

		got := gen.ReleaseNotes("v1.0.3", "v1.0.4")
		assert.Equal(t, "## 🚀 What's Changed\n\n### Performance\n- pool connections\n\n"+
			"**Full Changelog**: https://github.com/acme/llmcpp/compare/v1.0.3...v1.0.4\n", got)
	})
}

func TestGenerator_CurrentVersion(t *testing.T) {
	t.Parallel()

	gen := &Generator{}
	assert.Equal(t, "unknown", gen.CurrentVersion())

	gen.Version = fixedVersion("")
	assert.Equal(t, "unknown", gen.CurrentVersion())

	gen.Version = fixedVersion("3.1.4")
	assert.Equal(t, "3.1.4", gen.CurrentVersion())
}

func TestUpdateStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "created", StatusCreated.String())
	assert.Equal(t, "dry-run", StatusDryRun.String())
	assert.Equal(t, "exists", StatusExists.String())
}
