// Package workflow sequences the multi-step operations behind each ghp
// command: create an issue, start work on it, open a PR, and manage parallel
// worktrees. Each workflow composes the GitHub API client, git operations,
// and the lifecycle hook executor in a fixed order, deciding after each step
// whether to continue, degrade with a warning, or stop. Workflows never
// panic or return partial state without saying so: the result object always
// reports what succeeded and which hooks ran.
package workflow

import (
	"github.com/bretwardjames/ghp-sub001/internal/git"
	"github.com/bretwardjames/ghp-sub001/internal/github"
	"github.com/bretwardjames/ghp-sub001/internal/hooks"
)

// Result is the base outcome every workflow returns. Success distinguishes
// "nothing happened" from "something happened but degraded": partial
// failures after the primary side effect committed are reported as success
// with warnings.
type Result struct {
	Success     bool
	Error       string
	Warnings    []string
	HookResults []hooks.Result

	// AbortedByHook and AbortedAtEvent are set when a blocking hook, not an
	// operation error, stopped the workflow.
	AbortedByHook  string
	AbortedAtEvent hooks.EventType
}

// fail marks the result failed with the given error string.
func (r *Result) fail(message string) {
	r.Success = false
	r.Error = message
}

// warn records a degradation that did not stop the workflow.
func (r *Result) warn(message string) {
	r.Warnings = append(r.Warnings, message)
}

// recordHooks appends hook results to the running list.
func (r *Result) recordHooks(results []hooks.Result) {
	r.HookResults = append(r.HookResults, results...)
}

// abortedBy returns the name of the first aborting hook in results.
func abortedBy(results []hooks.Result) string {
	for _, hr := range results {
		if hr.Aborted {
			return hr.HookName
		}
	}
	return ""
}

// CreateIssueOptions are the inputs to CreateIssue.
type CreateIssueOptions struct {
	Repo  git.RepoInfo
	Title string
	Body  string

	// ProjectID adds the issue to a ProjectsV2 board when set.
	ProjectID string
	// Status sets the initial board status, resolved case-insensitively
	// against the project's status options. Unknown names are skipped.
	Status string

	Labels    []string
	Assignees []string

	// ParentIssue links the new issue as a sub-issue when non-zero.
	ParentIssue int
}

// CreateIssueResult is the outcome of CreateIssue.
type CreateIssueResult struct {
	Result
	Issue *github.IssueInfo
}

// StartIssueOptions are the inputs to StartIssue.
type StartIssueOptions struct {
	Repo  git.RepoInfo
	Issue github.IssueInfo

	// Branch is the branch already linked to the issue. When empty, one is
	// derived from BranchPattern.
	Branch string
	// BranchPattern substitutes {user}, {number}, {title}, {repo}.
	// Defaults to "{user}/{number}-{title}".
	BranchPattern string
	User          string

	// Parallel checks the branch out into a new worktree instead of
	// switching the main checkout. WorktreePath is required in that case;
	// choosing the location is the caller's responsibility.
	Parallel     bool
	WorktreePath string

	// Review prepares the branch for reviewing someone else's work: no
	// project status mutation and no hook firing, so reviewing never
	// "claims" the issue.
	Review bool

	// ProjectID and Status update the board status once work starts.
	ProjectID string
	Status    string
}

// StartIssueResult is the outcome of StartIssue.
type StartIssueResult struct {
	Result
	Branch   string
	Worktree *git.WorktreeInfo
}

// CreatePROptions are the inputs to CreatePR.
type CreatePROptions struct {
	Repo git.RepoInfo

	// Branch is the head branch; the current branch when empty.
	Branch string
	// Base is the target branch; the repository default when empty.
	Base string

	Title string
	Body  string
	Draft bool

	// Force proceeds past blocking hook aborts.
	Force bool
	// SkipHooks bypasses all three hook checkpoints entirely.
	SkipHooks bool
}

// CreatePRResult is the outcome of CreatePR.
type CreatePRResult struct {
	Result
	PR     *github.PRInfo
	Branch string
}

// CreateWorktreeOptions are the inputs to CreateWorktree.
type CreateWorktreeOptions struct {
	Repo   git.RepoInfo
	Branch string
	Path   string

	// Issue enriches the worktree-created hook payload when known.
	Issue *github.IssueInfo
}

// CreateWorktreeResult is the outcome of CreateWorktree.
type CreateWorktreeResult struct {
	Result
	Worktree *git.WorktreeInfo
	Branch   string

	// AlreadyExisted is true when a worktree for the branch was found and
	// returned as-is. No hooks fire in that case.
	AlreadyExisted bool
}

// RemoveWorktreeOptions are the inputs to RemoveWorktree. The worktree is
// resolved by explicit Path, then by Branch, then by matching IssueNumber
// against worktree branch names. First match wins.
type RemoveWorktreeOptions struct {
	Repo        git.RepoInfo
	Path        string
	Branch      string
	IssueNumber int

	// Issue enriches the worktree-removed hook payload when known.
	Issue *github.IssueInfo
}

// RemoveWorktreeResult is the outcome of RemoveWorktree.
type RemoveWorktreeResult struct {
	Result
	Worktree *git.WorktreeInfo
	Branch   string
}
