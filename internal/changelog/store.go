package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Store is whole-file access to the changelog text. Writes replace the
// entire content; there is no locking.
type Store interface {
	Exists() (bool, error)
	Read() (string, error)
	Write(content string) error
}

// FileStore keeps the changelog on disk.
type FileStore struct {
	Path string
}

// NewFileStore creates a store for the changelog at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Exists reports whether the changelog file is present.
func (s *FileStore) Exists() (bool, error) {
	_, err := os.Stat(s.Path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking changelog %s: %w", s.Path, err)
}

// Read returns the full changelog text.
func (s *FileStore) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("reading changelog: %w", err)
	}
	return string(data), nil
}

// Write replaces the changelog with content.
func (s *FileStore) Write(content string) error {
	if err := os.WriteFile(s.Path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	content string
	exists  bool
}

// NewMemoryStore returns an empty store with no changelog yet.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns a store whose changelog already holds content.
func NewMemoryStoreWith(content string) *MemoryStore {
	return &MemoryStore{content: content, exists: true}
}

func (m *MemoryStore) Exists() (bool, error) {
	return m.exists, nil
}

func (m *MemoryStore) Read() (string, error) {
	if !m.exists {
		return "", fmt.Errorf("reading changelog: %w", fs.ErrNotExist)
	}
	return m.content, nil
}

func (m *MemoryStore) Write(content string) error {
	m.content = content
	m.exists = true
	return nil
}

// Content returns the current text.
func (m *MemoryStore) Content() string {
	return m.content
}

// Preamble opens a newly created changelog.
const Preamble = `# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

`

// changelogHeader marks the line new entries are inserted after.
const changelogHeader = "# Changelog"

// NewChangelog returns the content of a fresh changelog holding one entry.
func NewChangelog(entry string) string {
	return Preamble + entry
}

// Prepend inserts entry after the first "# Changelog" line of existing,
// surrounded by blank lines. Without such a line the entry goes first.
func Prepend(existing, entry string) string {
	lines := strings.SplitAfter(existing, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	insertAt := 0
	for i, line := range lines {
		if strings.HasPrefix(line, changelogHeader) {
			insertAt = i + 1
			break
		}
	}

	var b strings.Builder
	for _, line := range lines[:insertAt] {
		b.WriteString(line)
	}
	b.WriteString("\n")
	b.WriteString(entry)
	b.WriteString("\n")
	for _, line := range lines[insertAt:] {
		b.WriteString(line)
	}
	return b.String()
}
