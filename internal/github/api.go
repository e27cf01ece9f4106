// Package github defines the boundary to the GitHub API client the workflow
// orchestrator collaborates with, plus a gh-CLI-backed implementation.
//
// The orchestrator depends only on the API interface. Methods return nil or
// false on recoverable failures (missing project item, unknown status option)
// and return errors only for unexpected, non-API failures.
package github

import (
	"context"
	"strings"
)

// IssueInfo is a denormalized snapshot of a GitHub issue used to build hook
// payloads and return values. The GitHub API is authoritative.
type IssueInfo struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
	URL    string `json:"url"`
	NodeID string `json:"id,omitempty"`
}

// PRInfo is a denormalized snapshot of a pull request.
type PRInfo struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
	URL    string `json:"url"`
}

// StatusOption is one selectable value of a project's status field.
type StatusOption struct {
	ID   string
	Name string
}

// StatusField is a project's single-select status field and its options.
type StatusField struct {
	ID      string
	Options []StatusOption
}

// OptionByName resolves a status option case-insensitively.
// Returns nil when no option matches.
func (f *StatusField) OptionByName(name string) *StatusOption {
	for i := range f.Options {
		if strings.EqualFold(f.Options[i].Name, name) {
			return &f.Options[i]
		}
	}
	return nil
}

// CreatePROptions are the inputs to the externally delegated PR creation.
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// API is the GitHub client surface the orchestrator consumes.
type API interface {
	// CreateIssue creates an issue and returns its snapshot.
	CreateIssue(ctx context.Context, repo string, title, body string) (*IssueInfo, error)

	// AddToProject adds an issue to a project and returns the item id.
	// Returns "" (no error) when the API reports a recoverable failure.
	AddToProject(ctx context.Context, projectID, issueNodeID string) (string, error)

	// GetStatusField fetches the project's status field definition.
	// Returns nil (no error) when the project has no status field.
	GetStatusField(ctx context.Context, projectID string) (*StatusField, error)

	// UpdateItemStatus sets a project item's status option.
	// Returns false (no error) on recoverable failure.
	UpdateItemStatus(ctx context.Context, projectID, itemID, fieldID, optionID string) (bool, error)

	// AddLabelToIssue applies one label to an issue. Best-effort.
	AddLabelToIssue(ctx context.Context, repo string, number int, label string) error

	// UpdateAssignees replaces the assignees of an issue.
	UpdateAssignees(ctx context.Context, repo string, number int, assignees []string) error

	// AddSubIssue links child as a sub-issue of parent.
	AddSubIssue(ctx context.Context, repo string, parent, child int) error

	// FindItemByNumber resolves a project item id from an issue number.
	// Returns "" (no error) when the issue is not on the project.
	FindItemByNumber(ctx context.Context, projectID string, number int) (string, error)

	// CreatePR opens a pull request and returns its snapshot.
	CreatePR(ctx context.Context, repo string, opts CreatePROptions) (*PRInfo, error)
}
