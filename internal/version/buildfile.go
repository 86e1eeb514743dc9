package version

import (
	"os"
	"regexp"
)

// Unknown is reported when no project version can be read.
const Unknown = "unknown"

// BuildFile reads the version from a `project(<name> VERSION X.Y.Z)`
// declaration in a CMake build file.
type BuildFile struct {
	Path    string
	Project string
}

// Version returns the declared version, or Unknown when the file or the
// declaration is missing.
func (b BuildFile) Version() string {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		return Unknown
	}
	v, ok := ParseProjectVersion(string(data), b.Project)
	if !ok {
		return Unknown
	}
	return v
}

// ParseProjectVersion finds the version of project in CMake source.
func ParseProjectVersion(content, project string) (string, bool) {
	pattern := regexp.MustCompile(`project\(` + regexp.QuoteMeta(project) + ` VERSION ([0-9.]+)\)`)
	m := pattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}
