package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bretwardjames/ghp-sub001/internal/logging"
)

// CLIClient implements API by shelling out to the gh CLI. Authentication and
// retries are gh's problem; recoverable API failures surface as zero values
// per the API contract.
type CLIClient struct {
	logger *logging.Logger
}

// NewCLIClient creates a gh-backed client.
func NewCLIClient(logger *logging.Logger) *CLIClient {
	return &CLIClient{logger: logger}
}

func (c *CLIClient) gh(ctx context.Context, args ...string) ([]byte, error) {
	c.logger.Debug("gh", "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, "gh", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("gh %s: %w: %s", args[0], err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("gh %s: %w", args[0], err)
	}
	return out, nil
}

// graphql runs a GraphQL query through gh api graphql with -f/-F variables.
func (c *CLIClient) graphql(ctx context.Context, query string, vars map[string]any, out any) error {
	args := []string{"api", "graphql", "-f", "query=" + query}
	for k, v := range vars {
		switch val := v.(type) {
		case int:
			args = append(args, "-F", fmt.Sprintf("%s=%d", k, val))
		default:
			args = append(args, "-f", fmt.Sprintf("%s=%v", k, val))
		}
	}
	data, err := c.gh(ctx, args...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse graphql response: %w", err)
	}
	return nil
}

// CreateIssue creates an issue via the REST endpoint.
func (c *CLIClient) CreateIssue(ctx context.Context, repo, title, body string) (*IssueInfo, error) {
	args := []string{
		"api", "repos/" + repo + "/issues",
		"-f", "title=" + title,
	}
	if body != "" {
		args = append(args, "-f", "body="+body)
	}
	data, err := c.gh(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}

	var resp struct {
		Number  int    `json:"number"`
		Title   string `json:"title"`
		Body    string `json:"body"`
		HTMLURL string `json:"html_url"`
		NodeID  string `json:"node_id"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse issue: %w", err)
	}
	return &IssueInfo{
		Number: resp.Number,
		Title:  resp.Title,
		Body:   resp.Body,
		URL:    resp.HTMLURL,
		NodeID: resp.NodeID,
	}, nil
}

// AddToProject adds the issue node to a ProjectsV2 board.
func (c *CLIClient) AddToProject(ctx context.Context, projectID, issueNodeID string) (string, error) {
	query := `mutation($project: ID!, $content: ID!) {
  addProjectV2ItemById(input: {projectId: $project, contentId: $content}) {
    item { id }
  }
}`
	var resp struct {
		Data struct {
			AddProjectV2ItemByID struct {
				Item struct {
					ID string `json:"id"`
				} `json:"item"`
			} `json:"addProjectV2ItemById"`
		} `json:"data"`
	}
	err := c.graphql(ctx, query, map[string]any{"project": projectID, "content": issueNodeID}, &resp)
	if err != nil {
		c.logger.Warn("add to project failed", "project", projectID, "error", err)
		return "", nil
	}
	return resp.Data.AddProjectV2ItemByID.Item.ID, nil
}

// GetStatusField fetches the project's "Status" single-select field.
func (c *CLIClient) GetStatusField(ctx context.Context, projectID string) (*StatusField, error) {
	query := `query($project: ID!) {
  node(id: $project) {
    ... on ProjectV2 {
      field(name: "Status") {
        ... on ProjectV2SingleSelectField {
          id
          options { id name }
        }
      }
    }
  }
}`
	var resp struct {
		Data struct {
			Node struct {
				Field struct {
					ID      string `json:"id"`
					Options []struct {
						ID   string `json:"id"`
						Name string `json:"name"`
					} `json:"options"`
				} `json:"field"`
			} `json:"node"`
		} `json:"data"`
	}
	if err := c.graphql(ctx, query, map[string]any{"project": projectID}, &resp); err != nil {
		return nil, err
	}
	if resp.Data.Node.Field.ID == "" {
		return nil, nil
	}
	field := &StatusField{ID: resp.Data.Node.Field.ID}
	for _, opt := range resp.Data.Node.Field.Options {
		field.Options = append(field.Options, StatusOption{ID: opt.ID, Name: opt.Name})
	}
	return field, nil
}

// UpdateItemStatus sets the status option on a project item.
func (c *CLIClient) UpdateItemStatus(ctx context.Context, projectID, itemID, fieldID, optionID string) (bool, error) {
	query := `mutation($project: ID!, $item: ID!, $field: ID!, $option: String!) {
  updateProjectV2ItemFieldValue(input: {
    projectId: $project, itemId: $item, fieldId: $field,
    value: {singleSelectOptionId: $option}
  }) {
    projectV2Item { id }
  }
}`
	err := c.graphql(ctx, query, map[string]any{
		"project": projectID, "item": itemID, "field": fieldID, "option": optionID,
	}, nil)
	if err != nil {
		c.logger.Warn("status update failed", "item", itemID, "error", err)
		return false, nil
	}
	return true, nil
}

// AddLabelToIssue applies one label via REST.
func (c *CLIClient) AddLabelToIssue(ctx context.Context, repo string, number int, label string) error {
	_, err := c.gh(ctx,
		"api", fmt.Sprintf("repos/%s/issues/%d/labels", repo, number),
		"-f", "labels[]="+label)
	if err != nil {
		return fmt.Errorf("add label %q: %w", label, err)
	}
	return nil
}

// UpdateAssignees replaces issue assignees via REST.
func (c *CLIClient) UpdateAssignees(ctx context.Context, repo string, number int, assignees []string) error {
	args := []string{"api", "-X", "PATCH", fmt.Sprintf("repos/%s/issues/%d", repo, number)}
	for _, a := range assignees {
		args = append(args, "-f", "assignees[]="+a)
	}
	if _, err := c.gh(ctx, args...); err != nil {
		return fmt.Errorf("update assignees: %w", err)
	}
	return nil
}

// AddSubIssue links child under parent using the sub-issues REST endpoint.
func (c *CLIClient) AddSubIssue(ctx context.Context, repo string, parent, child int) error {
	// The endpoint wants the child's numeric database id.
	data, err := c.gh(ctx, "api", fmt.Sprintf("repos/%s/issues/%d", repo, child))
	if err != nil {
		return fmt.Errorf("resolve sub-issue: %w", err)
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parse sub-issue: %w", err)
	}

	_, err = c.gh(ctx,
		"api", fmt.Sprintf("repos/%s/issues/%d/sub_issues", repo, parent),
		"-F", "sub_issue_id="+strconv.FormatInt(resp.ID, 10))
	if err != nil {
		return fmt.Errorf("link sub-issue #%d to #%d: %w", child, parent, err)
	}
	return nil
}

// FindItemByNumber walks the project's items looking for an issue number.
func (c *CLIClient) FindItemByNumber(ctx context.Context, projectID string, number int) (string, error) {
	query := `query($project: ID!) {
  node(id: $project) {
    ... on ProjectV2 {
      items(first: 100) {
        nodes {
          id
          content { ... on Issue { number } }
        }
      }
    }
  }
}`
	var resp struct {
		Data struct {
			Node struct {
				Items struct {
					Nodes []struct {
						ID      string `json:"id"`
						Content struct {
							Number int `json:"number"`
						} `json:"content"`
					} `json:"nodes"`
				} `json:"items"`
			} `json:"node"`
		} `json:"data"`
	}
	if err := c.graphql(ctx, query, map[string]any{"project": projectID}, &resp); err != nil {
		c.logger.Warn("project item lookup failed", "project", projectID, "error", err)
		return "", nil
	}
	for _, node := range resp.Data.Node.Items.Nodes {
		if node.Content.Number == number {
			return node.ID, nil
		}
	}
	return "", nil
}

// CreatePR opens a pull request with gh pr create.
func (c *CLIClient) CreatePR(ctx context.Context, repo string, opts CreatePROptions) (*PRInfo, error) {
	args := []string{
		"pr", "create",
		"-R", repo,
		"--head", opts.Head,
		"--title", opts.Title,
		"--body", opts.Body,
	}
	if opts.Base != "" {
		args = append(args, "--base", opts.Base)
	}
	if opts.Draft {
		args = append(args, "--draft")
	}
	out, err := c.gh(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("create PR: %w", err)
	}

	// gh pr create prints the PR URL on the last line.
	url := lastLine(string(out))
	pr := &PRInfo{Title: opts.Title, Body: opts.Body, URL: url}
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		if n, err := strconv.Atoi(url[idx+1:]); err == nil {
			pr.Number = n
		}
	}
	return pr, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

var _ API = (*CLIClient)(nil)
