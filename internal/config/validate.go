package config

import (
	"fmt"
	"regexp"
)

var (
	// Project name: must start with lowercase letter, may contain lowercase, digits, hyphens.
	// Hyphens must not be consecutive or trailing.
	projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

	// Target and service names: lowercase letters, digits, and hyphens.
	namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := ValidateProjectName(cfg.Project.Name); err != nil {
		return nil, err
	}

	if err := validateServices(cfg); err != nil {
		return nil, err
	}

	if err := validateTargets(cfg); err != nil {
		return nil, err
	}

	return nil, nil
}

func validateServices(cfg *Config) error {
	for name, svc := range cfg.Services {
		if !namePattern.MatchString(name) {
			return &ValidationError{
				Field:   fmt.Sprintf("services.%s", name),
				Message: "service name must match pattern ^[a-z][a-z0-9-]*$ (lowercase letters, digits, hyphens)",
			}
		}
		if svc.Image == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("services.%s.image", name),
				Message: "is required",
			}
		}
	}
	return nil
}

func validateTargets(cfg *Config) error {
	for name, target := range cfg.Targets {
		if !namePattern.MatchString(name) {
			return &ValidationError{
				Field:   fmt.Sprintf("targets.%s", name),
				Message: "target name must match pattern ^[a-z][a-z0-9-]*$ (lowercase letters, digits, hyphens)",
			}
		}
		if err := validateTargetConfig(cfg, name, target); err != nil {
			return err
		}
	}
	return nil
}

func validateTargetConfig(cfg *Config, name string, target TargetConfig) error {
	if err := validateRunDefinition(name, target.Run); err != nil {
		return err
	}

	for _, dep := range target.DependsOn {
		if _, ok := cfg.Targets[dep]; !ok {
			return &ValidationError{
				Field:   fmt.Sprintf("targets.%s.depends_on", name),
				Message: fmt.Sprintf("references undefined target %q", dep),
			}
		}
	}

	for _, svc := range target.Services {
		if _, ok := cfg.Services[svc]; !ok {
			return &ValidationError{
				Field:   fmt.Sprintf("targets.%s.services", name),
				Message: fmt.Sprintf("references undefined service %q", svc),
			}
		}
	}

	return nil
}

// validateRunDefinition checks that run is a non-empty string or a non-empty
// list of non-empty strings. These are the only shapes Steps() accepts.
func validateRunDefinition(name string, run interface{}) error {
	field := fmt.Sprintf("targets.%s.run", name)

	switch v := run.(type) {
	case nil:
		return &ValidationError{Field: field, Message: "is required"}
	case string:
		if v == "" {
			return &ValidationError{Field: field, Message: "must not be empty"}
		}
	case []interface{}:
		if len(v) == 0 {
			return &ValidationError{Field: field, Message: "must not be empty"}
		}
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return &ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Message: fmt.Sprintf("must be a string, got %T", item),
				}
			}
			if s == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Message: "must not be empty",
				}
			}
		}
	default:
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a string or list of strings, got %T", run),
		}
	}

	return nil
}

// ValidateProjectName checks if a project name is valid.
// Returns a ValidationError if the name is empty, too long (>128 chars),
// or doesn't match the required pattern.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project.name", Message: "is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "project.name", Message: "must be 128 characters or less"}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "project.name",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, non-consecutive hyphens)",
		}
	}
	return nil
}

// Steps returns the normalized list of shell commands for a target.
// A string run definition yields one step; a list yields one step per entry.
// Assumes the config has been validated.
func (t TargetConfig) Steps() []string {
	switch v := t.Run.(type) {
	case string:
		return []string{v}
	case []interface{}:
		steps := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				steps = append(steps, s)
			}
		}
		return steps
	default:
		return nil
	}
}
