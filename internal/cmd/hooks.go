package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bretwardjames/ghp-sub001/internal/config"
	"github.com/bretwardjames/ghp-sub001/internal/dashboard"
	"github.com/bretwardjames/ghp-sub001/internal/hooks"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage lifecycle and dashboard hooks",
}

var hooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered hooks",
	RunE:  runHooksList,
}

var hooksAddCmd = &cobra.Command{
	Use:   "add <name> <command>",
	Short: "Register a hook",
	Args:  cobra.ExactArgs(2),
	RunE:  runHooksAdd,
}

var hooksRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a hook",
	Args:  cobra.ExactArgs(1),
	RunE:  runHooksToggle(func(r registry, name string) error { return r.Remove(name) }, "removed"),
}

var hooksEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a hook",
	Args:  cobra.ExactArgs(1),
	RunE:  runHooksToggle(func(r registry, name string) error { return r.SetEnabled(name, true) }, "enabled"),
}

var hooksDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a hook",
	Args:  cobra.ExactArgs(1),
	RunE:  runHooksToggle(func(r registry, name string) error { return r.SetEnabled(name, false) }, "disabled"),
}

var (
	hookDashboard   bool
	hookEvent       string
	hookMode        string
	hookDisplayName string
	hookCategory    string
	hookTimeoutMs   int64
)

func init() {
	rootCmd.AddCommand(hooksCmd)
	hooksCmd.AddCommand(hooksListCmd)
	hooksCmd.AddCommand(hooksAddCmd)
	hooksCmd.AddCommand(hooksRemoveCmd)
	hooksCmd.AddCommand(hooksEnableCmd)
	hooksCmd.AddCommand(hooksDisableCmd)

	hooksCmd.PersistentFlags().BoolVar(&hookDashboard, "dashboard", false, "Operate on the dashboard hook registry")

	hooksAddCmd.Flags().StringVarP(&hookEvent, "event", "e", "", "Lifecycle event (required unless --dashboard)")
	hooksAddCmd.Flags().StringVarP(&hookMode, "mode", "m", string(hooks.ModeFireAndForget), "Execution mode: fire-and-forget, blocking, interactive")
	hooksAddCmd.Flags().StringVar(&hookDisplayName, "display-name", "", "Human-friendly name")
	hooksAddCmd.Flags().StringVar(&hookCategory, "category", "", "Dashboard category (only with --dashboard)")
	hooksAddCmd.Flags().Int64Var(&hookTimeoutMs, "timeout-ms", 0, "Execution timeout in milliseconds")
}

// registry is the common mutation surface of the two hook registries.
type registry interface {
	Remove(name string) error
	SetEnabled(name string, enabled bool) error
	Save() error
}

func runHooksList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigOnly()
	if err != nil {
		return err
	}

	if hookDashboard {
		reg, err := dashboard.LoadRegistry(cfg.Hooks.DashboardFile)
		if err != nil {
			return err
		}
		printRegistryWarnings(reg.Warnings())
		for _, h := range reg.All() {
			fmt.Printf("%s\t[%s]\t%s\t%s\n", h.Name, h.Category, enabledMark(h.Enabled), h.Command)
		}
		return nil
	}

	reg, err := hooks.LoadRegistry(cfg.Hooks.EventsFile)
	if err != nil {
		return err
	}
	printRegistryWarnings(reg.Warnings())
	for _, h := range reg.All() {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\n", h.Name, h.Event, h.Mode, enabledMark(h.Enabled), h.Command)
	}
	return nil
}

func runHooksAdd(cmd *cobra.Command, args []string) error {
	name, command := args[0], args[1]

	cfg, err := loadConfigOnly()
	if err != nil {
		return err
	}

	if hookDashboard {
		reg, err := dashboard.LoadRegistry(cfg.Hooks.DashboardFile)
		if err != nil {
			return err
		}
		hook := dashboard.Hook{
			Name:        name,
			Command:     command,
			DisplayName: hookDisplayName,
			Category:    hookCategory,
			Enabled:     true,
			Timeout:     time.Duration(hookTimeoutMs) * time.Millisecond,
		}
		if err := reg.Add(hook); err != nil {
			return err
		}
		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Printf("added dashboard hook %s\n", name)
		return nil
	}

	reg, err := hooks.LoadRegistry(cfg.Hooks.EventsFile)
	if err != nil {
		return err
	}
	hook := hooks.Hook{
		Name:        name,
		Event:       hooks.EventType(hookEvent),
		Command:     command,
		DisplayName: hookDisplayName,
		Enabled:     true,
		Mode:        hooks.Mode(hookMode),
		Timeout:     time.Duration(hookTimeoutMs) * time.Millisecond,
	}
	if err := reg.Add(hook); err != nil {
		return err
	}
	if err := reg.Save(); err != nil {
		return err
	}
	fmt.Printf("added hook %s for %s\n", name, hookEvent)
	return nil
}

// runHooksToggle builds a RunE that applies one mutation to whichever
// registry the --dashboard flag selects, then saves it.
func runHooksToggle(mutate func(registry, string) error, verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := loadConfigOnly()
		if err != nil {
			return err
		}

		var reg registry
		if hookDashboard {
			reg, err = dashboard.LoadRegistry(cfg.Hooks.DashboardFile)
		} else {
			reg, err = hooks.LoadRegistry(cfg.Hooks.EventsFile)
		}
		if err != nil {
			return err
		}

		if err := mutate(reg, name); err != nil {
			return err
		}
		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Printf("%s hook %s\n", verb, name)
		return nil
	}
}

// loadConfigOnly loads config without touching git or the log file; registry
// management works outside a repository.
func loadConfigOnly() (*config.Config, error) {
	return config.Load()
}

func enabledMark(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func printRegistryWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}
}
