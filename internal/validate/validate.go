// Package validate rejects unsafe branch names, paths, and free-text values
// before they are interpolated into shell-executed commands. It also provides
// ShellQuote, the single safe-interpolation primitive used by both hook
// execution paths.
package validate

import (
	"regexp"
	"strings"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
)

// branchNameRegex is the allow-list for branch names: path segments of
// alphanumerics, dots, underscores and hyphens separated by slashes.
var branchNameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+(/[A-Za-z0-9._-]+)*$`)

// pathRegex is the allow-list for filesystem paths passed to git commands.
var pathRegex = regexp.MustCompile(`^[A-Za-z0-9._~/ -]+$`)

// BranchName validates a git branch name against the allow-list.
// It fails fast on anything that could be interpreted by a shell or that git
// itself rejects (leading dash, dot segments, ref syntax like "..").
func BranchName(name string) error {
	if name == "" {
		return errors.NewValidationError("branch name", name, "must not be empty")
	}
	if !branchNameRegex.MatchString(name) {
		return errors.NewValidationError("branch name", name, "contains disallowed characters")
	}
	if strings.HasPrefix(name, "-") {
		return errors.NewValidationError("branch name", name, "must not start with a dash")
	}
	if strings.Contains(name, "..") {
		return errors.NewValidationError("branch name", name, "must not contain '..'")
	}
	if strings.HasSuffix(name, ".lock") || strings.HasSuffix(name, "/") {
		return errors.NewValidationError("branch name", name, "is not a valid git ref")
	}
	return nil
}

// Path validates a filesystem path before it is embedded in a git command.
func Path(path string) error {
	if path == "" {
		return errors.NewValidationError("path", path, "must not be empty")
	}
	if !pathRegex.MatchString(path) {
		return errors.NewValidationError("path", path, "contains disallowed characters")
	}
	if strings.Contains(path, "..") {
		return errors.NewValidationError("path", path, "must not contain '..'")
	}
	return nil
}

// FreeText validates operator-supplied free text (titles, status names) that
// is substituted into hook commands. The substitution itself goes through
// ShellQuote, so the only hard rejections here are control characters.
func FreeText(field, value string) error {
	for _, r := range value {
		if r < 0x20 && r != '\n' && r != '\t' {
			return errors.NewValidationError(field, value, "contains control characters")
		}
	}
	return nil
}

// ShellQuote wraps a value in single quotes, escaping each embedded single
// quote by closing the string, emitting a backslash-escaped quote, and
// reopening. Every value interpolated into a shell-executed command must
// pass through here; commands are never built by direct concatenation of
// untrusted input.
func ShellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
