// Package cmd wires the ghp command tree: issue, pr, and worktree workflows
// plus hook registry management and the branch dashboard.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bretwardjames/ghp-sub001/internal/config"
	"github.com/bretwardjames/ghp-sub001/internal/git"
	"github.com/bretwardjames/ghp-sub001/internal/github"
	"github.com/bretwardjames/ghp-sub001/internal/hooks"
	"github.com/bretwardjames/ghp-sub001/internal/logging"
	"github.com/bretwardjames/ghp-sub001/internal/workflow"
)

var rootCmd = &cobra.Command{
	Use:   "ghp",
	Short: "GitHub Projects workflow automation",
	Long: `ghp maps GitHub issue and PR lifecycle transitions onto git and GitHub
side effects: create issues on a project board, start work on a branch or a
parallel worktree, open PRs, and tear worktrees down again. Every transition
can trigger user-registered hooks.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is "+config.ConfigFile()+")")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress log output on stderr")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("GHP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}

// app bundles the collaborators every workflow command needs.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	git    *git.Client
	repo   git.RepoInfo
	runner *hooks.Executor
	orch   *workflow.Orchestrator
}

// setup loads config, opens the log, detects the repository, and builds the
// orchestrator. The caller must Close the returned app.
func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level: cfg.Logging.Level,
		File:  cfg.Logging.File,
		Quiet: viper.GetBool("quiet"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	gitClient := git.NewClient(cwd)
	repo, err := gitClient.RepoFromRemote(rootCmd.Context())
	if err != nil {
		logger.Close()
		return nil, err
	}

	registry, err := hooks.LoadRegistry(cfg.Hooks.EventsFile)
	if err != nil {
		logger.Close()
		return nil, err
	}
	for _, w := range registry.Warnings() {
		logger.Warn("hook registry", "warning", w)
	}
	runner := hooks.NewExecutor(registry, logger).WithPrompter(newTerminalPrompter())

	api := github.NewCLIClient(logger)
	orch := workflow.New(api, gitClient, runner, logger)

	return &app{
		cfg:    cfg,
		logger: logger,
		git:    gitClient,
		repo:   repo,
		runner: runner,
		orch:   orch,
	}, nil
}

func (a *app) Close() {
	if a.logger != nil {
		a.logger.Close()
	}
}

// printHookResults summarizes hook outcomes for the operator.
func printHookResults(results []hooks.Result) {
	for _, r := range results {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		if r.Aborted {
			status = "aborted"
		}
		fmt.Printf("  hook %s: %s (%s)\n", r.HookName, status, r.Duration.Round(time.Millisecond))
		if r.Error != "" {
			fmt.Printf("    %s\n", r.Error)
		}
	}
}

// printWarnings surfaces workflow degradations.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}
}
