package changelog

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// UnreleasedLabel is the version label of freshly generated entries.
	UnreleasedLabel = "Unreleased"

	// DateLayout is the date format used in version headings.
	DateLayout = "2006-01-02"

	// WhatsChangedHeading opens release notes and extracted sections.
	WhatsChangedHeading = "## 🚀 What's Changed"

	// NoChangesMessage is the whole release-notes body for an empty range.
	NoChangesMessage = "No changes in this release."
)

// WriteEntry writes an [Unreleased] changelog entry dated with date.
// Nothing is written when every section is empty.
func WriteEntry(w io.Writer, s Sections, date time.Time) error {
	if s.IsEmpty() {
		return nil
	}
	header := fmt.Sprintf("## [%s] - %s\n\n", UnreleasedLabel, date.Format(DateLayout))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	return writeSections(w, s)
}

// RenderEntry renders an [Unreleased] changelog entry. It returns the empty
// string when there is nothing to record; callers must skip the write then.
func RenderEntry(s Sections, date time.Time) string {
	var b strings.Builder
	_ = WriteEntry(&b, s, date)
	return b.String()
}

// WriteReleaseNotes writes GitHub release notes for the given sections with a
// comparison link between prev and current.
func WriteReleaseNotes(w io.Writer, s Sections, repoURL, prev, current string) error {
	if _, err := io.WriteString(w, WhatsChangedHeading+"\n\n"); err != nil {
		return err
	}
	if err := writeSections(w, s); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "**Full Changelog**: %s\n", CompareURL(repoURL, prev, current))
	return err
}

// RenderReleaseNotes is a convenience wrapper around WriteReleaseNotes.
func RenderReleaseNotes(s Sections, repoURL, prev, current string) string {
	var b strings.Builder
	_ = WriteReleaseNotes(&b, s, repoURL, prev, current)
	return b.String()
}

// CompareURL returns the repository comparison URL between two revisions.
func CompareURL(repoURL, prev, current string) string {
	return fmt.Sprintf("%s/compare/%s...%s", strings.TrimSuffix(repoURL, "/"), prev, current)
}

// ReleaseTagURL returns the release page URL of a bare version.
func ReleaseTagURL(repoURL, version string) string {
	return fmt.Sprintf("%s/releases/tag/v%s", strings.TrimSuffix(repoURL, "/"), version)
}

// writeSections writes every non-empty section in table order, each
// followed by a blank line.
func writeSections(w io.Writer, s Sections) error {
	for _, section := range s.NonEmpty() {
		if err := writeSection(w, section); err != nil {
			return fmt.Errorf("rendering %s: %w", section.Category, err)
		}
	}
	return nil
}

func writeSection(w io.Writer, section Section) error {
	if _, err := io.WriteString(w, "### "+string(section.Category)+"\n"); err != nil {
		return err
	}
	for _, entry := range section.Entries {
		if _, err := io.WriteString(w, "- "+entry+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
