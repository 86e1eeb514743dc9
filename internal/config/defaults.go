package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// GetDefaultConfigTemplate returns a commented project config template.
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# Every key can be overridden with a RELNOTES_<KEY> environment variable.

project_name: llmcpp                  # Name in the build file's project() declaration
repo_url: https://github.com/lucaromagnoli/llmcpp   # Base URL for compare/release links
changelog_file: CHANGELOG.md          # Changelog to update and extract from
build_file: CMakeLists.txt            # Build file holding the project version
repo_path: .                          # Git repository to read history from
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project_name":   "llmcpp",
		"repo_url":       "https://github.com/lucaromagnoli/llmcpp",
		"changelog_file": "CHANGELOG.md",
		"build_file":     "CMakeLists.txt",
		"repo_path":      ".",
	}
}

// WriteDefaultConfig writes the default template to configPath unless a file
// is already there. It reports whether the file was created.
func WriteDefaultConfig(configPath string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create config: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(GetDefaultConfigTemplate()); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
