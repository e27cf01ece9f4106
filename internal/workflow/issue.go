package workflow

import (
	"context"
	"fmt"

	"github.com/bretwardjames/ghp-sub001/internal/git"
	"github.com/bretwardjames/ghp-sub001/internal/hooks"
)

// defaultBranchPattern derives branch names like alice/42-fix-the-widget.
const defaultBranchPattern = "{user}/{number}-{title}"

// CreateIssue creates a GitHub issue, then performs the best-effort
// follow-ups: project placement, initial status, labels, assignees, and
// parent linking. Only issue creation itself is fatal; once the issue
// exists, every later failure degrades to a warning because the caller must
// be able to distinguish "nothing happened" from "created but incomplete".
func (o *Orchestrator) CreateIssue(ctx context.Context, opts CreateIssueOptions) CreateIssueResult {
	log := o.logger.WithWorkflow("create-issue")
	result := CreateIssueResult{}

	issue, err := o.api.CreateIssue(ctx, opts.Repo.FullName, opts.Title, opts.Body)
	if err != nil {
		result.fail(errorString(err))
		return result
	}
	result.Issue = issue
	result.Success = true
	log.Info("issue created", "number", issue.Number, "url", issue.URL)

	itemID := ""
	if opts.ProjectID != "" {
		itemID, err = o.api.AddToProject(ctx, opts.ProjectID, issue.NodeID)
		if err != nil || itemID == "" {
			result.warn(fmt.Sprintf("issue #%d created but could not be added to project %s",
				issue.Number, opts.ProjectID))
			log.Warn("project placement failed", "number", issue.Number, "error", err)
		}
	}

	if opts.Status != "" && itemID != "" {
		o.setItemStatus(ctx, &result.Result, opts.ProjectID, itemID, opts.Status)
	}

	for _, label := range opts.Labels {
		if err := o.api.AddLabelToIssue(ctx, opts.Repo.FullName, issue.Number, label); err != nil {
			result.warn(fmt.Sprintf("could not apply label %q", label))
			log.Warn("label failed", "label", label, "error", err)
		}
	}

	if len(opts.Assignees) > 0 {
		if err := o.api.UpdateAssignees(ctx, opts.Repo.FullName, issue.Number, opts.Assignees); err != nil {
			result.warn("could not set assignees")
			log.Warn("assignees failed", "error", err)
		}
	}

	if opts.ParentIssue != 0 {
		if err := o.api.AddSubIssue(ctx, opts.Repo.FullName, opts.ParentIssue, issue.Number); err != nil {
			result.warn(fmt.Sprintf("could not link to parent issue #%d", opts.ParentIssue))
			log.Warn("parent link failed", "parent", opts.ParentIssue, "error", err)
		}
	}

	// Issue creation has already committed, so hook outcomes are recorded
	// but can no longer stop anything.
	result.recordHooks(o.hooks.Run(ctx, hooks.IssueCreatedPayload{
		Repo:  opts.Repo,
		Issue: *issue,
	}, hooks.RunOptions{}))

	return result
}

// setItemStatus resolves a status name against the project's status field,
// case-insensitively, and applies it. Unknown names are skipped silently;
// API failures degrade to a warning.
func (o *Orchestrator) setItemStatus(ctx context.Context, result *Result, projectID, itemID, status string) {
	field, err := o.api.GetStatusField(ctx, projectID)
	if err != nil {
		result.warn("could not fetch project status field")
		return
	}
	if field == nil {
		return
	}
	option := field.OptionByName(status)
	if option == nil {
		return
	}
	ok, err := o.api.UpdateItemStatus(ctx, projectID, itemID, field.ID, option.ID)
	if err != nil || !ok {
		result.warn(fmt.Sprintf("could not set status to %q", status))
	}
}

// StartIssue prepares a branch (and optionally a worktree) for working on
// an issue. In review mode the branch is prepared without claiming the
// issue: no status mutation, no hooks.
func (o *Orchestrator) StartIssue(ctx context.Context, opts StartIssueOptions) StartIssueResult {
	log := o.logger.WithWorkflow("start-issue")
	result := StartIssueResult{}

	branch := opts.Branch
	if branch == "" {
		pattern := opts.BranchPattern
		if pattern == "" {
			pattern = defaultBranchPattern
		}
		branch = git.GenerateBranchName(pattern, git.BranchVars{
			User:   opts.User,
			Number: opts.Issue.Number,
			Title:  opts.Issue.Title,
			Repo:   opts.Repo.Name,
		})
	}
	result.Branch = branch

	exists, err := o.git.BranchExists(ctx, branch)
	if err != nil {
		result.fail(errorString(err))
		return result
	}
	if !exists {
		if err := o.git.CreateBranch(ctx, branch, ""); err != nil {
			result.fail(errorString(err))
			return result
		}
		log.Info("branch created", "branch", branch)
	}

	if opts.Parallel {
		if opts.WorktreePath == "" {
			result.fail("worktree path is required for parallel mode")
			return result
		}
		// The delegated creation fires worktree-created itself, from inside
		// the new worktree; review mode suppresses it like every other hook.
		wtResult := o.createWorktree(ctx, CreateWorktreeOptions{
			Repo:   opts.Repo,
			Branch: branch,
			Path:   opts.WorktreePath,
			Issue:  &opts.Issue,
		}, !opts.Review)
		result.recordHooks(wtResult.HookResults)
		if !wtResult.Success {
			result.fail(wtResult.Error)
			return result
		}
		result.Worktree = wtResult.Worktree
	} else {
		if err := o.git.Checkout(ctx, branch); err != nil {
			result.fail(errorString(err))
			return result
		}
	}
	result.Success = true

	if opts.Review {
		log.Info("review mode, skipping status update and hooks", "branch", branch)
		return result
	}

	if opts.ProjectID != "" && opts.Status != "" {
		itemID, err := o.api.FindItemByNumber(ctx, opts.ProjectID, opts.Issue.Number)
		if err != nil {
			result.warn("could not look up project item")
		} else if itemID != "" {
			o.setItemStatus(ctx, &result.Result, opts.ProjectID, itemID, opts.Status)
		}
	}

	// When a worktree was just created, hooks fire from inside it so plugin
	// side effects land there and not in the main checkout.
	runOpts := hooks.RunOptions{}
	if result.Worktree != nil {
		runOpts.Cwd = result.Worktree.Path
	}
	result.recordHooks(o.hooks.Run(ctx, hooks.IssueStartedPayload{
		Repo:     opts.Repo,
		Issue:    opts.Issue,
		Branch:   branch,
		Worktree: result.Worktree,
	}, runOpts))

	return result
}
