package git

import (
	"context"
	"regexp"
	"strings"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
	"github.com/bretwardjames/ghp-sub001/internal/validate"
)

// FailureKind classifies a git subprocess failure by exit code.
type FailureKind int

const (
	// FailureError is a real error that must propagate.
	FailureError FailureKind = iota
	// FailureNotFound means the ref, worktree, or repository the command was
	// asked about does not exist. "Does X exist" operations translate this
	// into a negative answer instead of an error.
	FailureNotFound
)

// ClassifyFailure maps a git exit code to a failure kind. Git uses exit code
// 128 for "doesn't exist" conditions in the contexts this package relies on
// (rev-parse --verify on a missing ref, rev-parse outside a repository,
// worktree add from a missing branch). Exit code 1 and everything else is a
// generic failure.
func ClassifyFailure(exitCode int) FailureKind {
	if exitCode == 128 {
		return FailureNotFound
	}
	return FailureError
}

// Client performs git operations rooted at a repository directory.
// Every operation either returns a value or fails with a *errors.GitError.
type Client struct {
	repoDir  string
	executor CommandExecutor
}

// NewClient creates a Client for the repository at repoDir.
func NewClient(repoDir string) *Client {
	return &Client{repoDir: repoDir, executor: NewCLICommandExecutor()}
}

// NewClientWithExecutor creates a Client with a custom executor.
// This is primarily useful for testing.
func NewClientWithExecutor(repoDir string, executor CommandExecutor) *Client {
	return &Client{repoDir: repoDir, executor: executor}
}

// RepoDir returns the repository root the client operates on.
func (c *Client) RepoDir() string {
	return c.repoDir
}

// run executes a git command in dir (repoDir when dir is empty) and wraps
// failures into a GitError carrying full diagnostic context.
func (c *Client) run(ctx context.Context, dir, message string, args ...string) (string, error) {
	if dir == "" {
		dir = c.repoDir
	}
	stdout, stderr, err := c.executor.Run(ctx, dir, "git", args...)
	if err != nil {
		return "", errors.NewGitError(message, err).
			WithCommand(commandLine("git", args)).
			WithStderr(stderr).
			WithExitCode(exitCode(err)).
			WithCwd(dir)
	}
	return stdout, nil
}

// notFound reports whether err is a git failure classified as "doesn't exist".
func notFound(err error) bool {
	gitErr := errors.AsGitError(err)
	return gitErr != nil && ClassifyFailure(gitErr.ExitCode) == FailureNotFound
}

// -----------------------------------------------------------------------------
// Identity helpers
// -----------------------------------------------------------------------------

// IsGitRepository reports whether dir is inside a git working tree.
// Exit code 128 means "no repository here" and is a negative answer, not an
// error; all other failures propagate.
func (c *Client) IsGitRepository(ctx context.Context, dir string) (bool, error) {
	if dir == "" {
		dir = c.repoDir
	}
	_, stderr, err := c.executor.Run(ctx, dir, "git", "rev-parse", "--is-inside-work-tree")
	if err != nil {
		if ClassifyFailure(exitCode(err)) == FailureNotFound {
			return false, nil
		}
		return false, errors.NewGitError("failed to check git repository", err).
			WithCommand("git rev-parse --is-inside-work-tree").
			WithStderr(stderr).
			WithExitCode(exitCode(err)).
			WithCwd(dir)
	}
	return true, nil
}

// CurrentBranch returns the short name of the checked-out branch.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "", "failed to get current branch", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DefaultBranch returns the repository's default branch. It prefers the
// remote HEAD symbolic ref and falls back to probing main, then master.
func (c *Client) DefaultBranch(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "", "failed to resolve origin HEAD", "symbolic-ref", "refs/remotes/origin/HEAD")
	if err == nil {
		ref := strings.TrimSpace(out)
		return strings.TrimPrefix(ref, "refs/remotes/origin/"), nil
	}
	if !notFound(err) {
		return "", err
	}

	for _, candidate := range []string{"main", "master"} {
		exists, err := c.BranchExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if exists {
			return candidate, nil
		}
	}
	return "", errors.NewGitError("failed to determine default branch", errors.ErrBranchNotFound).
		WithCwd(c.repoDir)
}

// remoteURLRegex parses SSH and HTTPS GitHub remote URLs.
var remoteURLRegex = regexp.MustCompile(`(?:[:/])([^/:]+)/([^/]+?)(?:\.git)?$`)

// RepoFromRemote derives RepoInfo from the origin remote URL.
func (c *Client) RepoFromRemote(ctx context.Context) (RepoInfo, error) {
	out, err := c.run(ctx, "", "failed to get origin remote URL", "remote", "get-url", "origin")
	if err != nil {
		if notFound(err) || errors.AsGitError(err).ExitCode == 2 {
			return RepoInfo{}, errors.NewGitError("no origin remote configured", errors.ErrNoRemote).
				WithCwd(c.repoDir)
		}
		return RepoInfo{}, err
	}

	url := strings.TrimSpace(out)
	matches := remoteURLRegex.FindStringSubmatch(url)
	if len(matches) != 3 {
		return RepoInfo{}, errors.NewGitError("unrecognized remote URL: "+url, errors.ErrNoRemote).
			WithCwd(c.repoDir)
	}
	owner, name := matches[1], matches[2]
	return RepoInfo{Owner: owner, Name: name, FullName: owner + "/" + name}, nil
}

// -----------------------------------------------------------------------------
// Branch operations
// -----------------------------------------------------------------------------

// BranchExists reports whether a local branch ref exists. A missing ref is a
// negative answer; any other git failure propagates.
func (c *Client) BranchExists(ctx context.Context, branch string) (bool, error) {
	if err := validate.BranchName(branch); err != nil {
		return false, err
	}
	_, err := c.run(ctx, "", "failed to check branch", "rev-parse", "--verify", "refs/heads/"+branch)
	if err != nil {
		if notFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateBranch creates a branch from base (HEAD when base is empty) without
// checking it out.
func (c *Client) CreateBranch(ctx context.Context, branch, base string) error {
	if err := validate.BranchName(branch); err != nil {
		return err
	}
	args := []string{"branch", branch}
	if base != "" {
		if err := validate.BranchName(base); err != nil {
			return err
		}
		args = append(args, base)
	}
	_, err := c.run(ctx, "", "failed to create branch "+branch, args...)
	return err
}

// Checkout switches the main working tree to branch.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	if err := validate.BranchName(branch); err != nil {
		return err
	}
	_, err := c.run(ctx, "", "failed to checkout branch "+branch, "checkout", branch)
	return err
}

// -----------------------------------------------------------------------------
// Worktree operations
// -----------------------------------------------------------------------------

// ListWorktrees returns all worktrees attached to the repository, parsed from
// the porcelain listing. The first entry is the main working tree.
func (c *Client) ListWorktrees(ctx context.Context) ([]WorktreeEntry, error) {
	out, err := c.run(ctx, "", "failed to list worktrees", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}

	var entries []WorktreeEntry
	var current *WorktreeEntry
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "worktree "):
			if current != nil {
				entries = append(entries, *current)
			}
			current = &WorktreeEntry{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "HEAD "):
			if current != nil {
				current.Head = strings.TrimPrefix(line, "HEAD ")
			}
		case strings.HasPrefix(line, "branch "):
			if current != nil {
				ref := strings.TrimPrefix(line, "branch ")
				current.Branch = strings.TrimPrefix(ref, "refs/heads/")
			}
		case line == "bare":
			if current != nil {
				current.Bare = true
			}
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries, nil
}

// FindWorktreeForBranch returns the non-main worktree checked out to branch,
// or nil when none exists.
func (c *Client) FindWorktreeForBranch(ctx context.Context, branch string) (*WorktreeEntry, error) {
	entries, err := c.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}
	// The first porcelain entry is the main working tree; a branch checked
	// out there does not count as a parallel worktree.
	for i, entry := range entries {
		if i == 0 {
			continue
		}
		if entry.Branch == branch {
			e := entry
			return &e, nil
		}
	}
	return nil, nil
}

// CreateWorktree creates a worktree at path checked out to branch. It tries,
// in order:
//
//  1. attach to an existing local branch
//  2. create a local branch tracking the matching remote branch
//  3. create a brand-new branch from the current HEAD
//
// Each fallback triggers only when the ref the previous step needed doesn't
// exist (exit code 128 from `worktree add` or the rev-parse probe of the
// remote ref); any other failure aborts the chain and propagates.
func (c *Client) CreateWorktree(ctx context.Context, path, branch string) (WorktreeInfo, error) {
	if err := validate.BranchName(branch); err != nil {
		return WorktreeInfo{}, err
	}
	if err := validate.Path(path); err != nil {
		return WorktreeInfo{}, err
	}

	// Existing local branch.
	_, err := c.run(ctx, "", "failed to create worktree from local branch "+branch,
		"worktree", "add", path, branch)
	if err == nil {
		return NewWorktreeInfo(path), nil
	}
	if !notFound(err) {
		return WorktreeInfo{}, err
	}

	// New local branch tracking the remote branch of the same name. The
	// remote ref is probed up front: a missing upstream makes `worktree add
	// --track` exit 255, indistinguishable from a hard failure.
	_, err = c.run(ctx, "", "failed to resolve origin/"+branch,
		"rev-parse", "--verify", "origin/"+branch)
	if err == nil {
		_, err = c.run(ctx, "", "failed to create worktree tracking origin/"+branch,
			"worktree", "add", "--track", "-b", branch, path, "origin/"+branch)
		if err != nil {
			return WorktreeInfo{}, err
		}
		return NewWorktreeInfo(path), nil
	}
	if !notFound(err) {
		return WorktreeInfo{}, err
	}

	// Brand-new branch from current HEAD.
	_, err = c.run(ctx, "", "failed to create worktree with new branch "+branch,
		"worktree", "add", "-b", branch, path)
	if err != nil {
		return WorktreeInfo{}, err
	}
	return NewWorktreeInfo(path), nil
}

// RemoveWorktree removes the worktree at path.
func (c *Client) RemoveWorktree(ctx context.Context, path string) error {
	if err := validate.Path(path); err != nil {
		return err
	}
	_, err := c.run(ctx, "", "failed to remove worktree", "worktree", "remove", "--force", path)
	if err != nil {
		return err
	}
	// Drop any stale administrative entries left behind.
	_, _ = c.run(ctx, "", "failed to prune worktrees", "worktree", "prune")
	return nil
}

// DiffStat returns the diffstat of branch against base (three-dot syntax).
func (c *Client) DiffStat(ctx context.Context, base, branch string) (string, error) {
	if err := validate.BranchName(base); err != nil {
		return "", err
	}
	if err := validate.BranchName(branch); err != nil {
		return "", err
	}
	out, err := c.run(ctx, "", "failed to get diff stat", "diff", "--stat", base+"..."+branch)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ChangedFiles returns the files changed on branch since it diverged from base.
func (c *Client) ChangedFiles(ctx context.Context, base, branch string) ([]string, error) {
	if err := validate.BranchName(base); err != nil {
		return nil, err
	}
	if err := validate.BranchName(branch); err != nil {
		return nil, err
	}
	out, err := c.run(ctx, "", "failed to get changed files", "diff", "--name-only", base+"..."+branch)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return []string{}, nil
	}
	return strings.Split(trimmed, "\n"), nil
}
