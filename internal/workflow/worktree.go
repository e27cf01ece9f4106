package workflow

import (
	"context"
	"fmt"

	"github.com/bretwardjames/ghp-sub001/internal/git"
	"github.com/bretwardjames/ghp-sub001/internal/hooks"
)

// CreateWorktree creates a parallel worktree for a branch. It is
// idempotent: when a non-main worktree already exists for the branch, it is
// returned with AlreadyExisted set and no hooks fire.
func (o *Orchestrator) CreateWorktree(ctx context.Context, opts CreateWorktreeOptions) CreateWorktreeResult {
	return o.createWorktree(ctx, opts, true)
}

// createWorktree implements CreateWorktree. StartIssue delegates here with
// fireHooks=false in review mode, where no hooks may fire.
func (o *Orchestrator) createWorktree(ctx context.Context, opts CreateWorktreeOptions, fireHooks bool) CreateWorktreeResult {
	log := o.logger.WithWorkflow("create-worktree")
	result := CreateWorktreeResult{Branch: opts.Branch}

	existing, err := o.git.FindWorktreeForBranch(ctx, opts.Branch)
	if err != nil {
		result.fail(errorString(err))
		return result
	}
	if existing != nil {
		info := existing.Info()
		result.Worktree = &info
		result.AlreadyExisted = true
		result.Success = true
		log.Info("worktree already exists", "branch", opts.Branch, "path", existing.Path)
		return result
	}

	wt, err := o.git.CreateWorktree(ctx, opts.Path, opts.Branch)
	if err != nil {
		result.fail(errorString(err))
		return result
	}
	result.Worktree = &wt
	result.Success = true
	log.Info("worktree created", "branch", opts.Branch, "path", wt.Path)

	if fireHooks {
		// Hooks run from inside the new worktree so their side effects land
		// in the right place.
		result.recordHooks(o.hooks.Run(ctx, hooks.WorktreeCreatedPayload{
			Repo:     opts.Repo,
			Branch:   opts.Branch,
			Worktree: wt,
			Issue:    opts.Issue,
		}, hooks.RunOptions{Cwd: wt.Path}))
	}

	return result
}

// RemoveWorktree resolves and removes a parallel worktree. Resolution tries
// the explicit path, then the branch name, then an issue-number match
// against worktree branch names; the first match wins.
func (o *Orchestrator) RemoveWorktree(ctx context.Context, opts RemoveWorktreeOptions) RemoveWorktreeResult {
	log := o.logger.WithWorkflow("remove-worktree")
	result := RemoveWorktreeResult{}

	entries, err := o.git.ListWorktrees(ctx)
	if err != nil {
		result.fail(errorString(err))
		return result
	}
	// Entry 0 is the main working tree and is never removable here.
	var candidates []git.WorktreeEntry
	if len(entries) > 1 {
		candidates = entries[1:]
	}

	target := resolveWorktree(candidates, opts)
	if target == nil {
		switch {
		case opts.Path != "":
			result.fail(fmt.Sprintf("No worktree found at %s", opts.Path))
		case opts.Branch != "":
			result.fail(fmt.Sprintf("No worktree found for branch %s", opts.Branch))
		default:
			result.fail(fmt.Sprintf("No worktree found for issue #%d", opts.IssueNumber))
		}
		return result
	}

	info := target.Info()
	result.Worktree = &info
	result.Branch = target.Branch

	if err := o.git.RemoveWorktree(ctx, target.Path); err != nil {
		result.fail(errorString(err))
		return result
	}
	result.Success = true
	log.Info("worktree removed", "branch", target.Branch, "path", target.Path)

	result.recordHooks(o.hooks.Run(ctx, hooks.WorktreeRemovedPayload{
		Repo:     opts.Repo,
		Branch:   target.Branch,
		Worktree: info,
		Issue:    opts.Issue,
	}, hooks.RunOptions{}))

	return result
}

// resolveWorktree picks the first candidate matching the options, in
// precedence order: path, branch, issue number heuristic.
func resolveWorktree(candidates []git.WorktreeEntry, opts RemoveWorktreeOptions) *git.WorktreeEntry {
	if opts.Path != "" {
		for i := range candidates {
			if candidates[i].Path == opts.Path {
				return &candidates[i]
			}
		}
		return nil
	}
	if opts.Branch != "" {
		for i := range candidates {
			if candidates[i].Branch == opts.Branch {
				return &candidates[i]
			}
		}
		return nil
	}
	if opts.IssueNumber != 0 {
		for i := range candidates {
			if git.BranchMatchesIssue(candidates[i].Branch, opts.IssueNumber) {
				return &candidates[i]
			}
		}
	}
	return nil
}
