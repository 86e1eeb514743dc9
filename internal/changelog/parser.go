package changelog

import (
	"regexp"
	"strings"
)

// conventionalPattern matches "<type>[(<scope>)]: <description>" against the
// whole message. The optional trailing newline lets a subject read with its
// line terminator still match; any other embedded newline does not.
var conventionalPattern = buildConventionalPattern()

func buildConventionalPattern() *regexp.Regexp {
	types := CommitTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return regexp.MustCompile(`^(` + strings.Join(names, "|") + `)(?:\(([^)]+)\))?: (.+)\n?$`)
}

// ParseCommit matches a commit message against the conventional commit
// grammar. The boolean is false when the message does not match, which is
// a normal outcome rather than an error.
func ParseCommit(message string) (ParsedCommit, bool) {
	m := conventionalPattern.FindStringSubmatch(message)
	if m == nil {
		return ParsedCommit{}, false
	}
	return ParsedCommit{
		Type:        CommitType(m[1]),
		Scope:       m[2],
		Description: m[3],
	}, true
}

// Categorize files every commit under its category, preserving commit order
// within each category. Messages that are not conventional commits are filed
// under Other with their full original text. Duplicates are kept.
func Categorize(commits []Commit) Sections {
	sections := NewSections()
	for _, c := range commits {
		parsed, ok := ParseCommit(c.Message)
		if !ok {
			logDebug("%s: not a conventional commit", shortHash(c.Hash))
			sections.Add(CategoryOther, c.Message)
			continue
		}
		category := CategoryFor(parsed.Type)
		logDebug("%s: %s -> %s", shortHash(c.Hash), parsed.Type, category)
		sections.Add(category, parsed.Description)
	}
	return sections
}

// NormalizeVersion strips surrounding space and a leading "v" from a tag name.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
