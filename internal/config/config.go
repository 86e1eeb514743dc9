// Package config provides layered configuration for the relnotes tools using koanf.
// Configuration is loaded with priority: environment variables (RELNOTES_*, optionally
// seeded from a .env file) > project config (.relnotes.yml or .relnotes.json) > defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the configuration.
const EnvPrefix = "RELNOTES_"

// Configuration holds the settings shared by update-changelog and extract-release-notes.
type Configuration struct {
	// ProjectName is the name used in the build file's project() declaration.
	ProjectName string `koanf:"project_name" validate:"required"`
	// RepoURL is the web URL used for compare and release links.
	RepoURL string `koanf:"repo_url" validate:"required,url"`
	// ChangelogFile is the path of the changelog, relative to the working directory.
	ChangelogFile string `koanf:"changelog_file" validate:"required"`
	// BuildFile is the CMake file holding the project version.
	BuildFile string `koanf:"build_file" validate:"required"`
	// RepoPath is the git repository to read history from.
	RepoPath string `koanf:"repo_path" validate:"required"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config lookup (.relnotes.yml, then .relnotes.json).
	ProjectConfigPath string
	// DotEnvPath overrides the .env file location (default: .env in the working directory).
	DotEnvPath string
	// SkipDotEnv disables .env loading.
	SkipDotEnv bool
}

// Load loads configuration from defaults, the project config file and the environment.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if !opts.SkipDotEnv {
		if err := loadDotEnv(opts.DotEnvPath); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, projectPathForErrors(opts.ProjectConfigPath))
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the project config file. An explicit path must exist;
// the default lookup silently falls back to defaults when no file is present.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		path = findProjectConfig()
		if path == "" {
			return nil
		}
	} else if !fileExists(path) {
		return &ValidationError{FilePath: path, Message: "config file not found"}
	}

	if isJSON(path) {
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load project config %s: %w", path, err)
		}
		if err := checkKnownKeys(fk.Keys(), path); err != nil {
			return err
		}
		return k.Merge(fk)
	}

	if err := ValidateYAMLFile(path); err != nil {
		return fmt.Errorf("validating YAML syntax for project config: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	return nil
}

// loadDotEnv seeds the process environment from a .env file. Variables that are
// already set win over the file. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		path = DotEnvPath()
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads RELNOTES_* environment variables
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf, source string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// ChangelogPath returns the changelog path. Relative changelog paths are
// resolved against the working directory, not the repository.
func (c *Configuration) ChangelogPath() string {
	return filepath.Clean(c.ChangelogFile)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func projectPathForErrors(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if found := findProjectConfig(); found != "" {
		return found
	}
	return "config"
}

// envTransform converts environment variable names to config keys
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
