package hooks

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
	"github.com/bretwardjames/ghp-sub001/internal/git"
	"github.com/bretwardjames/ghp-sub001/internal/github"
)

// Payload carries the event-specific values available to hook command
// templates. Each lifecycle event has exactly one payload variant; the
// executor matches on the variant when substituting template variables.
type Payload interface {
	// Event returns the lifecycle event this payload belongs to.
	Event() EventType

	// TemplateVars returns the dotted-path template variables and their
	// unquoted values. Substitution shell-quotes them.
	TemplateVars() (map[string]string, error)
}

// issueVars fills the issue.* variables shared by several payloads.
func issueVars(vars map[string]string, issue github.IssueInfo) error {
	vars["issue.number"] = strconv.Itoa(issue.Number)
	vars["issue.title"] = issue.Title
	vars["issue.body"] = issue.Body
	vars["issue.url"] = issue.URL

	raw, err := json.Marshal(issue)
	if err != nil {
		return errors.Wrap(err, "failed to serialize issue payload")
	}
	vars["issue.json"] = string(raw)
	return nil
}

// worktreeVars fills the worktree.* variables.
func worktreeVars(vars map[string]string, wt git.WorktreeInfo) {
	vars["worktree.path"] = wt.Path
	vars["worktree.name"] = wt.Name
}

// IssueCreatedPayload fires on issue-created.
type IssueCreatedPayload struct {
	Repo  git.RepoInfo
	Issue github.IssueInfo
}

func (p IssueCreatedPayload) Event() EventType { return EventIssueCreated }

func (p IssueCreatedPayload) TemplateVars() (map[string]string, error) {
	vars := map[string]string{"repo": p.Repo.FullName}
	if err := issueVars(vars, p.Issue); err != nil {
		return nil, err
	}
	return vars, nil
}

// IssueStartedPayload fires on issue-started. Worktree is nil when work
// starts in the main checkout.
type IssueStartedPayload struct {
	Repo     git.RepoInfo
	Issue    github.IssueInfo
	Branch   string
	Worktree *git.WorktreeInfo
}

func (p IssueStartedPayload) Event() EventType { return EventIssueStarted }

func (p IssueStartedPayload) TemplateVars() (map[string]string, error) {
	vars := map[string]string{
		"repo":   p.Repo.FullName,
		"branch": p.Branch,
	}
	if err := issueVars(vars, p.Issue); err != nil {
		return nil, err
	}
	if p.Worktree != nil {
		worktreeVars(vars, *p.Worktree)
	}
	return vars, nil
}

// PrePRPayload fires on pre-pr, before anything is pushed to GitHub.
type PrePRPayload struct {
	Repo         git.RepoInfo
	Branch       string
	DiffStat     string
	ChangedFiles []string
}

func (p PrePRPayload) Event() EventType { return EventPrePR }

func (p PrePRPayload) TemplateVars() (map[string]string, error) {
	return map[string]string{
		"repo":       p.Repo.FullName,
		"branch":     p.Branch,
		"diff.stat":  p.DiffStat,
		"diff.files": strings.Join(p.ChangedFiles, "\n"),
	}, nil
}

// PRCreatingPayload fires on pr-creating with the proposed title and body.
type PRCreatingPayload struct {
	Repo   git.RepoInfo
	Branch string
	Title  string
	Body   string
}

func (p PRCreatingPayload) Event() EventType { return EventPRCreating }

func (p PRCreatingPayload) TemplateVars() (map[string]string, error) {
	return map[string]string{
		"repo":     p.Repo.FullName,
		"branch":   p.Branch,
		"pr.title": p.Title,
		"pr.body":  p.Body,
	}, nil
}

// PRCreatedPayload fires on pr-created, after the PR exists.
type PRCreatedPayload struct {
	Repo   git.RepoInfo
	Branch string
	PR     github.PRInfo
}

func (p PRCreatedPayload) Event() EventType { return EventPRCreated }

func (p PRCreatedPayload) TemplateVars() (map[string]string, error) {
	vars := map[string]string{
		"repo":      p.Repo.FullName,
		"branch":    p.Branch,
		"pr.title":  p.PR.Title,
		"pr.url":    p.PR.URL,
		"pr.number": strconv.Itoa(p.PR.Number),
	}
	raw, err := json.Marshal(p.PR)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize PR payload")
	}
	vars["pr.json"] = string(raw)
	return vars, nil
}

// PRMergedPayload fires on pr-merged.
type PRMergedPayload struct {
	Repo git.RepoInfo
	PR   github.PRInfo
}

func (p PRMergedPayload) Event() EventType { return EventPRMerged }

func (p PRMergedPayload) TemplateVars() (map[string]string, error) {
	return map[string]string{
		"repo":      p.Repo.FullName,
		"pr.title":  p.PR.Title,
		"pr.url":    p.PR.URL,
		"pr.number": strconv.Itoa(p.PR.Number),
	}, nil
}

// WorktreeCreatedPayload fires on worktree-created. Issue is nil when the
// worktree was created without an associated issue.
type WorktreeCreatedPayload struct {
	Repo     git.RepoInfo
	Branch   string
	Worktree git.WorktreeInfo
	Issue    *github.IssueInfo
}

func (p WorktreeCreatedPayload) Event() EventType { return EventWorktreeCreated }

func (p WorktreeCreatedPayload) TemplateVars() (map[string]string, error) {
	vars := map[string]string{
		"repo":   p.Repo.FullName,
		"branch": p.Branch,
	}
	worktreeVars(vars, p.Worktree)
	if p.Issue != nil {
		if err := issueVars(vars, *p.Issue); err != nil {
			return nil, err
		}
	}
	return vars, nil
}

// WorktreeRemovedPayload fires on worktree-removed.
type WorktreeRemovedPayload struct {
	Repo     git.RepoInfo
	Branch   string
	Worktree git.WorktreeInfo
	Issue    *github.IssueInfo
}

func (p WorktreeRemovedPayload) Event() EventType { return EventWorktreeRemoved }

func (p WorktreeRemovedPayload) TemplateVars() (map[string]string, error) {
	vars := map[string]string{
		"repo":   p.Repo.FullName,
		"branch": p.Branch,
	}
	worktreeVars(vars, p.Worktree)
	if p.Issue != nil {
		if err := issueVars(vars, *p.Issue); err != nil {
			return nil, err
		}
	}
	return vars, nil
}
