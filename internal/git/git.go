// Package git provides the commit history collaborator for relnotes: revision
// resolution, last reachable tag and commit ranges. It uses the go-git library
// so neither binary needs the git CLI.
package git

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/blang/semver/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/ariel-frischer/relnotes/internal/changelog"
)

// ErrNoTags is returned by LastTag when no tag is reachable from HEAD.
var ErrNoTags = errors.New("no tags reachable from HEAD")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("repository opened successfully")
	return repo, nil
}

// Repository reads history from a git repository. The repository is opened
// lazily on first use, so construction never fails and an unreadable path
// surfaces as an error from the first query.
type Repository struct {
	Path string

	repo *git.Repository
}

var _ changelog.History = (*Repository)(nil)

// NewRepository returns a Repository rooted at path ("" means the working directory).
func NewRepository(path string) *Repository {
	return &Repository{Path: path}
}

func (r *Repository) open() (*git.Repository, error) {
	if r.repo != nil {
		return r.repo, nil
	}
	repo, err := openRepo(r.Path)
	if err != nil {
		return nil, err
	}
	r.repo = repo
	return repo, nil
}

// LastTag returns the nearest tag reachable from HEAD, walking history newest
// first. When several tags point at the same commit the highest semantic
// version wins.
func (r *Repository) LastTag() (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}

	tagsByCommit, err := collectTags(repo)
	if err != nil {
		return "", err
	}
	if len(tagsByCommit) == 0 {
		return "", ErrNoTags
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return "", fmt.Errorf("reading log from HEAD: %w", err)
	}
	defer iter.Close()

	var found string
	err = iter.ForEach(func(c *object.Commit) error {
		if names, ok := tagsByCommit[c.Hash]; ok {
			found = highestTag(names)
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking history: %w", err)
	}
	if found == "" {
		return "", ErrNoTags
	}

	logDebug("LastTag: %s", found)
	return found, nil
}

// InitialCommit returns the hash of the oldest root commit reachable from HEAD.
func (r *Repository) InitialCommit() (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return "", fmt.Errorf("reading log from HEAD: %w", err)
	}
	defer iter.Close()

	var root string
	err = iter.ForEach(func(c *object.Commit) error {
		if c.NumParents() == 0 {
			root = c.Hash.String()
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking history: %w", err)
	}
	if root == "" {
		return "", errors.New("no root commit found")
	}

	logDebug("InitialCommit: %s", root)
	return root, nil
}

// CommitsBetween returns the commits reachable from to but not from from,
// oldest first, like `git log --reverse from..to`. Each message is reduced to
// its subject line.
func (r *Repository) CommitsBetween(from, to string) ([]changelog.Commit, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}

	fromHash, err := resolveCommit(repo, from)
	if err != nil {
		return nil, err
	}
	toHash, err := resolveCommit(repo, to)
	if err != nil {
		return nil, err
	}

	excluded, err := ancestors(repo, fromHash)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{From: toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", to, err)
	}
	defer iter.Close()

	var newestFirst []changelog.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if _, skip := excluded[c.Hash]; skip {
			return nil
		}
		newestFirst = append(newestFirst, changelog.Commit{
			Hash:    c.Hash.String(),
			Message: subject(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s..%s: %w", from, to, err)
	}

	commits := make([]changelog.Commit, len(newestFirst))
	for i, c := range newestFirst {
		commits[len(newestFirst)-1-i] = c
	}

	logDebug("CommitsBetween %s..%s: %d commits", from, to, len(commits))
	return commits, nil
}

// resolveCommit resolves a revision (tag, branch, hash, HEAD~n) to a commit
// hash, peeling annotated tags.
func resolveCommit(repo *git.Repository, rev string) (plumbing.Hash, error) {
	h, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	if _, err := repo.CommitObject(*h); err == nil {
		return *h, nil
	}
	tag, err := repo.TagObject(*h)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("revision %q is not a commit: %w", rev, err)
	}
	commit, err := tag.Commit()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("peeling tag %q: %w", rev, err)
	}
	return commit.Hash, nil
}

// ancestors returns the set of commits reachable from h, h included.
func ancestors(repo *git.Repository, h plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := repo.Log(&git.LogOptions{From: h})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", h, err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking ancestors of %s: %w", h, err)
	}
	return seen, nil
}

// collectTags maps commit hashes to the names of the tags pointing at them.
func collectTags(repo *git.Repository) (map[plumbing.Hash][]string, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer refs.Close()

	tags := make(map[plumbing.Hash][]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tag, err := repo.TagObject(target); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				logDebug("skipping tag %s: %v", ref.Name().Short(), err)
				return nil
			}
			target = commit.Hash
		}
		tags[target] = append(tags[target], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	return tags, nil
}

// highestTag picks the greatest semantic version among names. Names that do
// not parse as versions sort below those that do, then lexically.
func highestTag(names []string) string {
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, errI := semver.ParseTolerant(sorted[i])
		vj, errJ := semver.ParseTolerant(sorted[j])
		switch {
		case errI == nil && errJ == nil:
			return vi.GT(vj)
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return sorted[i] > sorted[j]
		}
	})
	return sorted[0]
}

// subject returns the first paragraph of a commit message folded onto one
// line, matching git's %s placeholder: leading blank lines are skipped, each
// line loses its trailing whitespace and lines are joined with a single space.
// Whitespace inside a line is kept as written.
func subject(message string) string {
	var lines []string
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, " ")
}
