package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bretwardjames/ghp-sub001/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the branch activity dashboard",
	Long: `Render the activity dashboard for a branch. Every enabled dashboard hook
is invoked concurrently with --branch and --repo arguments and contributes a
section of content; failed providers are listed with their errors.`,
	RunE: runDashboard,
}

var dashboardBranch string

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashboardBranch, "branch", "", "Branch to render (default: current branch)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	branch := dashboardBranch
	if branch == "" {
		branch, err = a.git.CurrentBranch(cmd.Context())
		if err != nil {
			return err
		}
	}

	registry, err := dashboard.LoadRegistry(a.cfg.Hooks.DashboardFile)
	if err != nil {
		return err
	}
	for _, w := range registry.Warnings() {
		a.logger.Warn("dashboard registry", "warning", w)
	}

	executor := dashboard.NewExecutor(registry, a.logger)
	results := executor.Run(cmd.Context(), branch, a.repo.FullName)

	fmt.Print(dashboard.Render(branch, a.repo.FullName, results))
	return nil
}
