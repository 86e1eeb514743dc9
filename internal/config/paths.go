package config

import "os"

// ProjectConfigPath returns the path to the YAML project config file.
// This is always .relnotes.yml relative to the current directory.
func ProjectConfigPath() string {
	return ".relnotes.yml"
}

// ProjectJSONConfigPath returns the path to the JSON project config file.
func ProjectJSONConfigPath() string {
	return ".relnotes.json"
}

// DotEnvPath returns the default .env location.
func DotEnvPath() string {
	return ".env"
}

// HasProjectConfig reports whether a project config exists in the working directory.
func HasProjectConfig() bool {
	return findProjectConfig() != ""
}

// findProjectConfig returns the first existing project config, YAML first.
func findProjectConfig() string {
	for _, path := range []string{ProjectConfigPath(), ProjectJSONConfigPath()} {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
