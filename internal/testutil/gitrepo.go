// Package testutil provides helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitRepo is a throwaway repository built with go-git in a temp directory.
// Commits get strictly increasing timestamps so history order is stable.
type GitRepo struct {
	Dir string

	t     *testing.T
	repo  *git.Repository
	clock time.Time
	n     int
}

// NewGitRepo initializes an empty repository under t.TempDir().
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return &GitRepo{
		Dir:   dir,
		t:     t,
		repo:  repo,
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (g *GitRepo) signature() *object.Signature {
	g.clock = g.clock.Add(time.Minute)
	return &object.Signature{Name: "Test", Email: "test@example.com", When: g.clock}
}

// Commit writes a new file revision and commits it with message.
// It returns the commit hash.
func (g *GitRepo) Commit(message string) string {
	g.t.Helper()

	g.n++
	path := filepath.Join(g.Dir, "history.txt")
	line := fmt.Sprintf("change %d\n", g.n)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		g.t.Fatalf("open history file: %v", err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		g.t.Fatalf("write history file: %v", err)
	}
	if err := f.Close(); err != nil {
		g.t.Fatalf("close history file: %v", err)
	}

	wt, err := g.repo.Worktree()
	if err != nil {
		g.t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("history.txt"); err != nil {
		g.t.Fatalf("add: %v", err)
	}
	h, err := wt.Commit(message, &git.CommitOptions{Author: g.signature()})
	if err != nil {
		g.t.Fatalf("commit %q: %v", message, err)
	}
	return h.String()
}

// Tag creates a lightweight tag at commit.
func (g *GitRepo) Tag(name, commit string) {
	g.t.Helper()

	if _, err := g.repo.CreateTag(name, plumbing.NewHash(commit), nil); err != nil {
		g.t.Fatalf("tag %s: %v", name, err)
	}
}

// AnnotatedTag creates an annotated tag at commit.
func (g *GitRepo) AnnotatedTag(name, commit string) {
	g.t.Helper()

	opts := &git.CreateTagOptions{Tagger: g.signature(), Message: "release " + name}
	if _, err := g.repo.CreateTag(name, plumbing.NewHash(commit), opts); err != nil {
		g.t.Fatalf("annotated tag %s: %v", name, err)
	}
}
