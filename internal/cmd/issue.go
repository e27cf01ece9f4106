package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
	"github.com/bretwardjames/ghp-sub001/internal/git"
	"github.com/bretwardjames/ghp-sub001/internal/github"
	"github.com/bretwardjames/ghp-sub001/internal/validate"
	"github.com/bretwardjames/ghp-sub001/internal/workflow"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Create and start work on GitHub issues",
}

var issueCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create an issue and place it on the project board",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssueCreate,
}

var issueStartCmd = &cobra.Command{
	Use:   "start <number>",
	Short: "Create or check out a branch for an issue",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssueStart,
}

var (
	issueBody      string
	issueLabels    []string
	issueAssignees []string
	issueParent    int

	startBranch   string
	startParallel bool
	startReview   bool
	startTitle    string
)

func init() {
	rootCmd.AddCommand(issueCmd)
	issueCmd.AddCommand(issueCreateCmd)
	issueCmd.AddCommand(issueStartCmd)

	issueCreateCmd.Flags().StringVarP(&issueBody, "body", "b", "", "Issue body")
	issueCreateCmd.Flags().StringSliceVarP(&issueLabels, "label", "l", nil, "Labels to apply (repeatable)")
	issueCreateCmd.Flags().StringSliceVarP(&issueAssignees, "assignee", "a", nil, "Assignees (repeatable)")
	issueCreateCmd.Flags().IntVar(&issueParent, "parent", 0, "Parent issue number to link as sub-issue")

	issueStartCmd.Flags().StringVar(&startBranch, "branch", "", "Use this branch instead of deriving one")
	issueStartCmd.Flags().BoolVarP(&startParallel, "parallel", "p", false, "Work in a parallel worktree instead of switching branches")
	issueStartCmd.Flags().BoolVar(&startReview, "review", false, "Prepare the branch for review without claiming the issue")
	issueStartCmd.Flags().StringVar(&startTitle, "title", "", "Issue title used for branch naming (skips the API lookup)")
}

func runIssueCreate(cmd *cobra.Command, args []string) error {
	title := args[0]
	if err := validate.FreeText("title", title); err != nil {
		return err
	}
	if err := validate.FreeText("body", issueBody); err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	result := a.orch.CreateIssue(cmd.Context(), workflow.CreateIssueOptions{
		Repo:        a.repo,
		Title:       title,
		Body:        issueBody,
		ProjectID:   a.cfg.Project.ID,
		Status:      a.cfg.Project.CreateStatus,
		Labels:      issueLabels,
		Assignees:   issueAssignees,
		ParentIssue: issueParent,
	})

	printWarnings(result.Warnings)
	printHookResults(result.HookResults)
	if !result.Success {
		return errors.New(result.Error)
	}
	fmt.Printf("created issue #%d: %s\n", result.Issue.Number, result.Issue.URL)
	return nil
}

func runIssueStart(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.NewValidationError("issue number", args[0], "must be an integer")
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	issue := github.IssueInfo{Number: number, Title: startTitle}

	opts := workflow.StartIssueOptions{
		Repo:          a.repo,
		Issue:         issue,
		Branch:        startBranch,
		BranchPattern: a.cfg.Branch.Pattern,
		User:          a.cfg.Branch.User,
		Parallel:      startParallel,
		Review:        startReview,
		ProjectID:     a.cfg.Project.ID,
		Status:        a.cfg.Project.StartStatus,
	}
	if startParallel {
		branch := startBranch
		if branch == "" {
			branch = git.GenerateBranchName(a.cfg.Branch.Pattern, git.BranchVars{
				User:   a.cfg.Branch.User,
				Number: number,
				Title:  startTitle,
				Repo:   a.repo.Name,
			})
		}
		opts.WorktreePath = filepath.Join(
			a.cfg.Worktree.ResolveDir(a.git.RepoDir()),
			filepath.Base(branch),
		)
	}

	result := a.orch.StartIssue(cmd.Context(), opts)

	printWarnings(result.Warnings)
	printHookResults(result.HookResults)
	if !result.Success {
		return errors.New(result.Error)
	}
	if result.Worktree != nil {
		fmt.Printf("started #%d on %s in worktree %s\n", number, result.Branch, result.Worktree.Path)
	} else {
		fmt.Printf("started #%d on %s\n", number, result.Branch)
	}
	return nil
}
