package changelog

import (
	"fmt"
	"time"
)

const (
	// HeadRevision is the upper bound of "commits since last tag".
	HeadRevision = "HEAD"

	// fallbackRevision is used when neither a tag nor a root commit resolves.
	fallbackRevision = "HEAD~10"

	unknownVersion = "unknown"
)

// History yields commit records from version control.
type History interface {
	// LastTag returns the nearest tag reachable from HEAD.
	LastTag() (string, error)
	// InitialCommit returns the hash of the root commit of HEAD.
	InitialCommit() (string, error)
	// CommitsBetween returns commits reachable from to but not from from,
	// oldest first.
	CommitsBetween(from, to string) ([]Commit, error)
}

// VersionSource yields the current project version.
type VersionSource interface {
	Version() string
}

// Reporter receives user-facing status lines.
type Reporter interface {
	Infof(format string, args ...any)
	Successf(format string, args ...any)
	Warnf(format string, args ...any)
}

// UpdateStatus describes how an update ended.
type UpdateStatus int

const (
	// StatusUpdated means an entry was inserted into an existing changelog.
	StatusUpdated UpdateStatus = iota
	// StatusCreated means the changelog was created with the preamble.
	StatusCreated
	// StatusNoCommits means the range since the last tag was empty.
	StatusNoCommits
	// StatusNoContent means the commits rendered to nothing.
	StatusNoContent
	// StatusDryRun means an entry was rendered but not written.
	StatusDryRun
	// StatusExists means init found an existing changelog and did nothing.
	StatusExists
)

// String returns the status name.
func (s UpdateStatus) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusCreated:
		return "created"
	case StatusNoCommits:
		return "no-commits"
	case StatusNoContent:
		return "no-content"
	case StatusDryRun:
		return "dry-run"
	case StatusExists:
		return "exists"
	default:
		return "unknown"
	}
}

// UpdateOptions tunes Update and Init.
type UpdateOptions struct {
	// DryRun renders the entry without touching the store.
	DryRun bool
}

// UpdateResult reports what Update did.
type UpdateResult struct {
	Status UpdateStatus
	// Since is the revision the commit range started from.
	Since string
	// Entry is the rendered changelog entry, if any.
	Entry string
	// Commits is the number of commits in the range.
	Commits int
}

// Generator ties history, version source and store together.
type Generator struct {
	History  History
	Store    Store
	Version  VersionSource
	Reporter Reporter
	RepoURL  string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Update prepends an [Unreleased] entry for every commit since the last tag.
// History failures are reported as warnings and treated as an empty range;
// store failures are returned.
func (g *Generator) Update(opts UpdateOptions) (UpdateResult, error) {
	version := g.currentVersion()
	since := g.lastRevision()

	g.report().Infof("Updating changelog for version %s", version)
	g.report().Infof("Generating changelog from %s to current HEAD...", since)

	commits := g.commitsBetween(since, HeadRevision)
	result := UpdateResult{Since: since, Commits: len(commits)}
	if len(commits) == 0 {
		g.report().Infof("No new commits since last tag")
		result.Status = StatusNoCommits
		return result, nil
	}

	entry := RenderEntry(Categorize(commits), g.now())
	if entry == "" {
		g.report().Infof("No conventional commits found")
		result.Status = StatusNoContent
		return result, nil
	}
	result.Entry = entry

	if opts.DryRun {
		result.Status = StatusDryRun
		return result, nil
	}

	status, err := g.write(entry)
	if err != nil {
		return result, err
	}
	result.Status = status

	g.report().Successf("Changelog updated successfully!")
	return result, nil
}

// Init runs Update only when no changelog exists yet.
func (g *Generator) Init(opts UpdateOptions) (UpdateResult, error) {
	exists, err := g.Store.Exists()
	if err != nil {
		return UpdateResult{}, err
	}
	if exists {
		g.report().Warnf("Changelog already exists. Use 'update' to add new entries.")
		return UpdateResult{Status: StatusExists}, nil
	}
	return g.Update(opts)
}

// ReleaseNotes renders release notes for the commits between prev and
// current. An empty range yields NoChangesMessage.
func (g *Generator) ReleaseNotes(prev, current string) string {
	commits := g.commitsBetween(prev, current)
	if len(commits) == 0 {
		return NoChangesMessage
	}
	return RenderReleaseNotes(Categorize(commits), g.RepoURL, prev, current)
}

// CurrentVersion returns the project version, or "unknown".
func (g *Generator) CurrentVersion() string {
	return g.currentVersion()
}

func (g *Generator) write(entry string) (UpdateStatus, error) {
	exists, err := g.Store.Exists()
	if err != nil {
		return 0, err
	}
	if !exists {
		if err := g.Store.Write(NewChangelog(entry)); err != nil {
			return 0, fmt.Errorf("creating changelog: %w", err)
		}
		return StatusCreated, nil
	}

	existing, err := g.Store.Read()
	if err != nil {
		return 0, err
	}
	if err := g.Store.Write(Prepend(existing, entry)); err != nil {
		return 0, fmt.Errorf("updating changelog: %w", err)
	}
	return StatusUpdated, nil
}

// lastRevision returns the last tag, else the initial commit, else HEAD~10.
func (g *Generator) lastRevision() string {
	tag, err := g.History.LastTag()
	if err == nil && tag != "" {
		return tag
	}
	logDebug("no last tag: %v", err)

	root, err := g.History.InitialCommit()
	if err == nil && root != "" {
		return root
	}
	logDebug("no initial commit: %v", err)
	return fallbackRevision
}

func (g *Generator) commitsBetween(from, to string) []Commit {
	commits, err := g.History.CommitsBetween(from, to)
	if err != nil {
		g.report().Warnf("Could not get commits: %v", err)
		return nil
	}
	logDebug("%d commits in %s..%s", len(commits), from, to)
	return commits
}

func (g *Generator) currentVersion() string {
	if g.Version == nil {
		return unknownVersion
	}
	if v := g.Version.Version(); v != "" {
		return v
	}
	return unknownVersion
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Generator) report() Reporter {
	if g.Reporter == nil {
		return discardReporter{}
	}
	return g.Reporter
}

type discardReporter struct{}

func (discardReporter) Infof(string, ...any)    {}
func (discardReporter) Successf(string, ...any) {}
func (discardReporter) Warnf(string, ...any)    {}
