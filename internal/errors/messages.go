package errors

import "fmt"

// Common error messages for the relnotes commands.
// These templates ensure consistent, actionable error messages.

// MissingVersionArgument creates an error for a missing extract-release-notes version.
func MissingVersionArgument() *CLIError {
	return NewArgumentErrorWithUsage(
		"version is required",
		"extract-release-notes <version>",
		"Pass the version without the leading 'v', for example: extract-release-notes 1.2.0",
	)
}

// MissingReleaseTags creates an error for release-notes called without both tags.
func MissingReleaseTags() *CLIError {
	return NewArgumentErrorWithUsage(
		"previous and current tags are required",
		"update-changelog release-notes <prev_tag> <current_tag>",
		"List existing tags with: git tag --sort=-v:refname",
	)
}

// UnknownCommand creates an error for an unrecognized update-changelog command.
func UnknownCommand(command string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown command %q", command),
		"Use 'update-changelog help' for usage information",
	)
}

// ChangelogNotFound creates an error for a changelog that does not exist yet.
func ChangelogNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Create it with: update-changelog init",
		"Or set changelog_file in .relnotes.yml",
	)
}

// ConfigInvalid creates an error for configuration that failed to load or validate.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .relnotes.yml (or the file passed with --config)",
		"Check RELNOTES_* environment variables and .env",
	)
}

// ChangelogIOError creates an error for a changelog that could not be read or written.
func ChangelogIOError(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("changelog %s", path),
		"Check that the file and its directory are readable and writable",
	)
}
