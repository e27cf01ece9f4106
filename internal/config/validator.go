package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // The config field path (e.g., "logging.level")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// branchPlaceholders are the substitutions available to branch.pattern.
var branchPlaceholders = []string{"{user}", "{number}", "{title}", "{repo}"}

// Validate checks the Config for invalid values and returns all validation
// errors found.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateBranch()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateBranch() []ValidationError {
	var errors []ValidationError

	pattern := c.Branch.Pattern
	if pattern == "" {
		errors = append(errors, ValidationError{
			Field:   "branch.pattern",
			Value:   pattern,
			Message: "must not be empty",
		})
		return errors
	}

	hasPlaceholder := false
	for _, p := range branchPlaceholders {
		if strings.Contains(pattern, p) {
			hasPlaceholder = true
			break
		}
	}
	if !hasPlaceholder {
		errors = append(errors, ValidationError{
			Field:   "branch.pattern",
			Value:   pattern,
			Message: fmt.Sprintf("must contain at least one of %s", strings.Join(branchPlaceholders, ", ")),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
