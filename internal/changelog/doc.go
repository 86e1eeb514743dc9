// Package changelog turns conventional-commit history into Keep a Changelog markdown.
//
// This package implements:
//   - conventional commit parsing (type, optional scope, description)
//   - categorization of commits into a fixed, ordered set of changelog sections
//   - rendering of an [Unreleased] changelog entry and of GitHub release notes
//   - extraction of a single version section from an existing CHANGELOG.md
//   - the Store abstraction over the changelog file and the Generator that
//     ties history, version source and store together
//
// Every step is a pure function except the Generator, whose collaborators
// (History, VersionSource, Store, Reporter) are interfaces so the whole flow
// runs in tests without a repository or a filesystem.
package changelog
