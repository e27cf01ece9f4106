package git

import (
	"regexp"
	"strconv"
	"strings"
)

// BranchVars are the substitution values for branch name patterns.
type BranchVars struct {
	User   string
	Number int
	Title  string
	Repo   string
}

// maxSlugLength bounds the slugified title segment in generated branch names.
const maxSlugLength = 50

// GenerateBranchName derives a branch name from a pattern containing
// {user}, {number}, {title}, and {repo} placeholders. The title is slugified
// before substitution so the result is always a valid ref.
func GenerateBranchName(pattern string, vars BranchVars) string {
	replacer := strings.NewReplacer(
		"{user}", Slugify(vars.User),
		"{number}", strconv.Itoa(vars.Number),
		"{title}", Slugify(vars.Title),
		"{repo}", Slugify(vars.Repo),
	)
	return strings.Trim(replacer.Replace(pattern), "/-")
}

// slugCleanRegex collapses every run of non-alphanumerics into one hyphen.
var slugCleanRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a value and reduces it to hyphen-separated alphanumeric
// runs, truncated to a branch-friendly length.
func Slugify(value string) string {
	slug := slugCleanRegex.ReplaceAllString(strings.ToLower(value), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}

// Issue number extraction patterns, tried in order: "alice/42-fix-bug",
// "42-fix-bug", "fix/issue-42", then a bare trailing or infix number
// ("fix-99-thing"). The last pattern is a known false-positive source for
// branches like "release/2024"; the ordering is kept for compatibility with
// existing branch conventions.
var issueNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/(\d+)[-_]`),
	regexp.MustCompile(`^(\d+)[-_]`),
	regexp.MustCompile(`issue-(\d+)`),
	regexp.MustCompile(`[-_/](\d+)(?:$|[-_])`),
}

// ExtractIssueNumberFromBranch extracts the issue number encoded in a branch
// name. Returns 0, false when the branch carries no recognizable number.
func ExtractIssueNumberFromBranch(branch string) (int, bool) {
	for _, pattern := range issueNumberPatterns {
		matches := pattern.FindStringSubmatch(branch)
		if len(matches) == 2 {
			n, err := strconv.Atoi(matches[1])
			if err != nil {
				continue
			}
			return n, true
		}
	}
	return 0, false
}

// BranchMatchesIssue reports whether a branch name references an issue
// number using one of the recognized conventions: "/N-", "/N_", a leading
// "N-", or a literal "issue-N".
func BranchMatchesIssue(branch string, number int) bool {
	n := strconv.Itoa(number)
	if strings.Contains(branch, "/"+n+"-") || strings.Contains(branch, "/"+n+"_") {
		return true
	}
	if strings.HasPrefix(branch, n+"-") {
		return true
	}
	return strings.Contains(branch, "issue-"+n)
}
