package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
	"github.com/bretwardjames/ghp-sub001/internal/workflow"
)

var worktreeCmd = &cobra.Command{
	Use:     "worktree",
	Aliases: []string{"wt"},
	Short:   "Manage parallel git worktrees",
}

var worktreeCreateCmd = &cobra.Command{
	Use:   "create <branch>",
	Short: "Create a worktree for a branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorktreeCreate,
}

var worktreeRemoveCmd = &cobra.Command{
	Use:   "remove [issue-number]",
	Short: "Remove a worktree by issue number, branch, or path",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWorktreeRemove,
}

var worktreeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List worktrees",
	RunE:  runWorktreeList,
}

var (
	wtCreatePath   string
	wtRemovePath   string
	wtRemoveBranch string
)

func init() {
	rootCmd.AddCommand(worktreeCmd)
	worktreeCmd.AddCommand(worktreeCreateCmd)
	worktreeCmd.AddCommand(worktreeRemoveCmd)
	worktreeCmd.AddCommand(worktreeListCmd)

	worktreeCreateCmd.Flags().StringVar(&wtCreatePath, "path", "", "Worktree path (default: under the configured worktree dir)")
	worktreeRemoveCmd.Flags().StringVar(&wtRemovePath, "path", "", "Resolve the worktree by path")
	worktreeRemoveCmd.Flags().StringVar(&wtRemoveBranch, "branch", "", "Resolve the worktree by branch")
}

func runWorktreeCreate(cmd *cobra.Command, args []string) error {
	branch := args[0]

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	path := wtCreatePath
	if path == "" {
		path = filepath.Join(a.cfg.Worktree.ResolveDir(a.git.RepoDir()), filepath.Base(branch))
	}

	result := a.orch.CreateWorktree(cmd.Context(), workflow.CreateWorktreeOptions{
		Repo:   a.repo,
		Branch: branch,
		Path:   path,
	})

	printHookResults(result.HookResults)
	if !result.Success {
		return errors.New(result.Error)
	}
	if result.AlreadyExisted {
		fmt.Printf("worktree for %s already exists at %s\n", branch, result.Worktree.Path)
	} else {
		fmt.Printf("created worktree for %s at %s\n", branch, result.Worktree.Path)
	}
	return nil
}

func runWorktreeRemove(cmd *cobra.Command, args []string) error {
	opts := workflow.RemoveWorktreeOptions{
		Path:   wtRemovePath,
		Branch: wtRemoveBranch,
	}
	if len(args) == 1 {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewValidationError("issue number", args[0], "must be an integer")
		}
		opts.IssueNumber = number
	}
	if opts.Path == "" && opts.Branch == "" && opts.IssueNumber == 0 {
		return errors.New("specify an issue number, --branch, or --path")
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()
	opts.Repo = a.repo

	result := a.orch.RemoveWorktree(cmd.Context(), opts)

	printHookResults(result.HookResults)
	if !result.Success {
		return errors.New(result.Error)
	}
	fmt.Printf("removed worktree %s (%s)\n", result.Worktree.Path, result.Branch)
	return nil
}

func runWorktreeList(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.git.ListWorktrees(cmd.Context())
	if err != nil {
		return err
	}
	for i, entry := range entries {
		marker := ""
		if i == 0 {
			marker = " (main)"
		}
		fmt.Printf("%s\t%s%s\n", entry.Path, entry.Branch, marker)
	}
	return nil
}
