package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError describes a problem in a config file. Line and Column are
// set for YAML problems that can be located; Field names the offending key.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLFile checks that filePath parses as YAML and holds a flat
// mapping of known settings. An empty file is valid.
func ValidateYAMLFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, fs.ErrPermission) {
			msg = "permission denied"
		}
		return &ValidationError{FilePath: filePath, Message: msg}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		line, column := yamlErrorPosition(err.Error())
		return &ValidationError{
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  yamlErrorMessage(err.Error()),
		}
	}

	// A blank or comment-only document has no content node.
	if len(doc.Content) == 0 || (doc.Content[0].Kind == yaml.ScalarNode && doc.Content[0].Tag == "!!null") {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return &ValidationError{
			FilePath: filePath,
			Line:     root.Line,
			Column:   root.Column,
			Message:  "expected a mapping of settings",
		}
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if !isKnownKey(key.Value) {
			return &ValidationError{
				FilePath: filePath,
				Line:     key.Line,
				Column:   key.Column,
				Field:    key.Value,
				Message:  fmt.Sprintf("unknown setting '%s'", key.Value),
			}
		}
		if value.Kind != yaml.ScalarNode {
			return &ValidationError{
				FilePath: filePath,
				Line:     value.Line,
				Column:   value.Column,
				Field:    key.Value,
				Message:  fmt.Sprintf("setting '%s' must be a single value", key.Value),
			}
		}
	}
	return nil
}

// checkKnownKeys rejects keys loaded from filePath that are not settings.
func checkKnownKeys(keys []string, filePath string) error {
	for _, key := range keys {
		if !isKnownKey(key) {
			return &ValidationError{
				FilePath: filePath,
				Field:    key,
				Message:  "unknown setting",
			}
		}
	}
	return nil
}

func isKnownKey(key string) bool {
	_, ok := GetDefaults()[key]
	return ok
}

// ValidateConfigValues checks the merged configuration and reports the first
// failing setting, in declaration order, by its config key.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(koanfTagName)

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{
			FilePath: filePath,
			Field:    fieldErrs[0].Field(),
			Message:  describeFieldError(fieldErrs[0]),
		}
	}
	return &ValidationError{FilePath: filePath, Message: err.Error()}
}

// yamlErrorPosition reads the position out of a yaml.v3 message such as
// "yaml: line 5: could not find expected ':'".
func yamlErrorPosition(msg string) (line, column int) {
	var l, c int
	if n, _ := fmt.Sscanf(msg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(msg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// yamlErrorMessage drops the "yaml: line N:" prefix that ValidationError
// already renders as a position.
func yamlErrorMessage(msg string) string {
	if !strings.HasPrefix(msg, "yaml:") {
		return msg
	}
	if idx := strings.LastIndex(msg, ": "); idx > 0 {
		return msg[idx+2:]
	}
	return strings.TrimSpace(strings.TrimPrefix(msg, "yaml:"))
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}

// koanfTagName reports fields by their config key so errors name what the user wrote.
func koanfTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
