package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
	"github.com/bretwardjames/ghp-sub001/internal/workflow"
)

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Create pull requests",
}

var prCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a pull request for the current branch",
	Long: `Open a pull request for the current branch. Registered pre-pr and
pr-creating hooks run first and may abort the creation; --force proceeds
past blocking failures and --skip-hooks bypasses the checkpoints entirely.`,
	RunE: runPRCreate,
}

var (
	prTitle     string
	prBody      string
	prBranch    string
	prBase      string
	prDraft     bool
	prForce     bool
	prSkipHooks bool
)

func init() {
	rootCmd.AddCommand(prCmd)
	prCmd.AddCommand(prCreateCmd)

	prCreateCmd.Flags().StringVarP(&prTitle, "title", "t", "", "PR title")
	prCreateCmd.Flags().StringVarP(&prBody, "body", "b", "", "PR body")
	prCreateCmd.Flags().StringVar(&prBranch, "branch", "", "Head branch (default: current branch)")
	prCreateCmd.Flags().StringVar(&prBase, "base", "", "Base branch (default: repository default)")
	prCreateCmd.Flags().BoolVarP(&prDraft, "draft", "d", false, "Create as a draft PR")
	prCreateCmd.Flags().BoolVar(&prForce, "force", false, "Proceed past blocking hook failures")
	prCreateCmd.Flags().BoolVar(&prSkipHooks, "skip-hooks", false, "Skip all PR hook checkpoints")
	_ = prCreateCmd.MarkFlagRequired("title")
}

func runPRCreate(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	base := prBase
	if base == "" {
		base = a.cfg.PR.Base
	}

	result := a.orch.CreatePR(cmd.Context(), workflow.CreatePROptions{
		Repo:      a.repo,
		Branch:    prBranch,
		Base:      base,
		Title:     prTitle,
		Body:      prBody,
		Draft:     prDraft || a.cfg.PR.Draft,
		Force:     prForce,
		SkipHooks: prSkipHooks,
	})

	printWarnings(result.Warnings)
	printHookResults(result.HookResults)
	if !result.Success {
		if result.AbortedByHook != "" {
			return errors.New(fmt.Sprintf("%s (at %s; use --force to override)",
				result.Error, result.AbortedAtEvent))
		}
		return errors.New(result.Error)
	}
	fmt.Printf("created PR #%d: %s\n", result.PR.Number, result.PR.URL)
	return nil
}
