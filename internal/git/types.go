package git

import "path/filepath"

// RepoInfo identifies a GitHub repository. It is produced once by the remote
// detector and passed by value through the system.
type RepoInfo struct {
	Owner    string
	Name     string
	FullName string
}

// WorktreeInfo is a git worktree's filesystem location and directory basename.
type WorktreeInfo struct {
	Path string
	Name string
}

// NewWorktreeInfo derives a WorktreeInfo from a worktree path.
func NewWorktreeInfo(path string) WorktreeInfo {
	return WorktreeInfo{Path: path, Name: filepath.Base(path)}
}

// WorktreeEntry is one record from `git worktree list --porcelain`.
type WorktreeEntry struct {
	Path   string
	Head   string
	Branch string // Short branch name; empty for detached HEAD
	Bare   bool
}

// Info converts a list entry to the WorktreeInfo snapshot used in results.
func (e WorktreeEntry) Info() WorktreeInfo {
	return NewWorktreeInfo(e.Path)
}
