package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// ExtractOutcome distinguishes the three results of looking up a version
// section in a changelog.
type ExtractOutcome int

const (
	// ExtractMissing means no "## [<version>]" heading exists.
	ExtractMissing ExtractOutcome = iota
	// ExtractEmpty means the heading exists but its body is blank.
	ExtractEmpty
	// ExtractFound means the heading exists with a non-blank body.
	ExtractFound
)

// String returns the outcome name.
func (o ExtractOutcome) String() string {
	switch o {
	case ExtractFound:
		return "found"
	case ExtractEmpty:
		return "empty"
	default:
		return "missing"
	}
}

// Extraction is the result of Extract.
type Extraction struct {
	Version string
	Outcome ExtractOutcome
	// Body is the trimmed section body; empty unless Outcome is ExtractFound.
	Body string
}

// Extract locates the section of content that starts with "## [<version>]"
// and runs up to the next "## [" heading or the end of the text. The version
// is matched literally. A body made only of whitespace counts as empty.
func Extract(content, version string) Extraction {
	pattern := regexp.MustCompile(`(?ms)^## \[` + regexp.QuoteMeta(version) + `\][^\n]*\n(.*?)(?:^## \[|\z)`)

	m := pattern.FindStringSubmatch(content)
	if m == nil {
		logDebug("no section for version %q", version)
		return Extraction{Version: version, Outcome: ExtractMissing}
	}

	body := strings.TrimSpace(m[1])
	if body == "" {
		logDebug("section for version %q is empty", version)
		return Extraction{Version: version, Outcome: ExtractEmpty}
	}
	return Extraction{Version: version, Outcome: ExtractFound, Body: body}
}

// Render formats the extraction as release notes. Empty and missing
// sections fall back to a generic block linking the v<version> release tag.
func (e Extraction) Render(repoURL string) string {
	switch e.Outcome {
	case ExtractFound:
		return fmt.Sprintf("%s\n\n%s", WhatsChangedHeading, e.Body)
	case ExtractEmpty:
		return fallbackNotes(e.Version, "No detailed changes found for this version.", repoURL)
	default:
		return fallbackNotes(e.Version, "This release includes various improvements and bug fixes.", repoURL)
	}
}

// Lookup extracts the section headed by version exactly as written. Only when
// no such section exists is a leading "v" dropped and the lookup retried, so
// both "## [v1.2.0]" and "## [1.2.0]" headings answer to "v1.2.0". The
// result's Version never carries the "v", since fallback notes add it to the
// tag link themselves.
func Lookup(content, version string) Extraction {
	version = strings.TrimSpace(version)
	bare := NormalizeVersion(version)

	e := Extract(content, version)
	if e.Outcome == ExtractMissing && bare != version {
		e = Extract(content, bare)
	}
	e.Version = bare
	return e
}

// ReleaseNotesFor looks up and renders the notes of one version in a single call.
func ReleaseNotesFor(content, version, repoURL string) string {
	return Lookup(content, version).Render(repoURL)
}

func fallbackNotes(version, sentence, repoURL string) string {
	return fmt.Sprintf("## 🚀 Release %s\n\n%s\n\n**Full Changelog**: %s",
		version, sentence, ReleaseTagURL(repoURL, version))
}
