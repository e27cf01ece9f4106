package hooks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bretwardjames/ghp-sub001/internal/validate"
)

// placeholderRegex matches ${dotted.path} template placeholders.
var placeholderRegex = regexp.MustCompile(`\$\{([a-zA-Z0-9_.]+)\}`)

// Substitute replaces every ${...} placeholder in command with the matching
// payload value, shell-quoted. Referencing a variable the payload doesn't
// provide is an internal hook error, subject to the registry failure policy.
func Substitute(command string, payload Payload) (string, error) {
	vars, err := payload.TemplateVars()
	if err != nil {
		return "", err
	}

	var missing []string
	result := placeholderRegex.ReplaceAllStringFunc(command, func(match string) string {
		name := placeholderRegex.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return validate.ShellQuote(value)
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("unknown template variable(s) %s for event %q",
			strings.Join(missing, ", "), payload.Event())
	}
	return result, nil
}
