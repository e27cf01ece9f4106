// Package config loads and validates the ghp configuration via viper.
// Defaults are registered up front so flags, environment variables, and the
// config file all layer over the same baseline.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete ghp configuration.
type Config struct {
	Project  ProjectConfig  `mapstructure:"project"`
	Branch   BranchConfig   `mapstructure:"branch"`
	Worktree WorktreeConfig `mapstructure:"worktree"`
	PR       PRConfig       `mapstructure:"pr"`
	Hooks    HooksConfig    `mapstructure:"hooks"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ProjectConfig ties issues to a GitHub ProjectsV2 board.
type ProjectConfig struct {
	// ID is the ProjectsV2 node id. Empty disables all project operations.
	ID string `mapstructure:"id"`
	// CreateStatus is the board status applied to freshly created issues.
	CreateStatus string `mapstructure:"create_status"`
	// StartStatus is the board status applied when work starts on an issue.
	StartStatus string `mapstructure:"start_status"`
}

// BranchConfig controls branch naming.
type BranchConfig struct {
	// Pattern derives branch names from issues. Placeholders: {user},
	// {number}, {title}, {repo}.
	Pattern string `mapstructure:"pattern"`
	// User fills the {user} placeholder.
	User string `mapstructure:"user"`
}

// WorktreeConfig controls where parallel worktrees are created.
type WorktreeConfig struct {
	// Dir is the directory worktrees are created under. Relative paths are
	// resolved against the repository root; ~ expands to the home directory.
	Dir string `mapstructure:"dir"`
}

// ResolveDir returns the worktree parent directory resolved against baseDir.
func (w *WorktreeConfig) ResolveDir(baseDir string) string {
	if w.Dir == "" {
		return filepath.Join(baseDir, ".ghp", "worktrees")
	}

	path := w.Dir
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return path
}

// PRConfig controls pull request creation.
type PRConfig struct {
	// Draft creates PRs as drafts by default.
	Draft bool `mapstructure:"draft"`
	// Base overrides the target branch; the repository default when empty.
	Base string `mapstructure:"base"`
}

// HooksConfig locates the hook registries.
type HooksConfig struct {
	// EventsFile is the lifecycle hook registry path.
	EventsFile string `mapstructure:"events_file"`
	// DashboardFile is the dashboard hook registry path.
	DashboardFile string `mapstructure:"dashboard_file"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// File is the rotating log file path. Empty disables file logging.
	File string `mapstructure:"file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Branch: BranchConfig{
			Pattern: "{user}/{number}-{title}",
		},
		Hooks: HooksConfig{
			EventsFile:    filepath.Join(ConfigDir(), "hooks.yaml"),
			DashboardFile: filepath.Join(ConfigDir(), "dashboard.yaml"),
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(ConfigDir(), "logs", "ghp.log"),
		},
	}
}

// SetDefaults registers all default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("project.id", defaults.Project.ID)
	viper.SetDefault("project.create_status", defaults.Project.CreateStatus)
	viper.SetDefault("project.start_status", defaults.Project.StartStatus)

	viper.SetDefault("branch.pattern", defaults.Branch.Pattern)
	viper.SetDefault("branch.user", defaults.Branch.User)

	viper.SetDefault("worktree.dir", defaults.Worktree.Dir)

	viper.SetDefault("pr.draft", defaults.PR.Draft)
	viper.SetDefault("pr.base", defaults.PR.Base)

	viper.SetDefault("hooks.events_file", defaults.Hooks.EventsFile)
	viper.SetDefault("hooks.dashboard_file", defaults.Hooks.DashboardFile)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load unmarshals the current viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the directory ghp stores its configuration in.
func ConfigDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "ghp")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ghp"
	}
	return filepath.Join(home, ".ghp")
}

// ConfigFile returns the path of the main config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
