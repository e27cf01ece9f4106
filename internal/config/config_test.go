package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Branch.Pattern != "{user}/{number}-{title}" {
		t.Errorf("Branch.Pattern = %q", cfg.Branch.Pattern)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Hooks.EventsFile == "" || cfg.Hooks.DashboardFile == "" {
		t.Errorf("hook registry paths must default: %+v", cfg.Hooks)
	}
}

func TestLoadFromFile(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	content := []byte(`
project:
  id: PVT_1
  start_status: In Progress
branch:
  pattern: "{number}-{title}"
  user: alice
pr:
  draft: true
`)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Project.ID != "PVT_1" || cfg.Project.StartStatus != "In Progress" {
		t.Errorf("Project = %+v", cfg.Project)
	}
	if cfg.Branch.Pattern != "{number}-{title}" || cfg.Branch.User != "alice" {
		t.Errorf("Branch = %+v", cfg.Branch)
	}
	if !cfg.PR.Draft {
		t.Error("PR.Draft should be true")
	}
	// Unset keys keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	resetViper(t)
	viper.Set("logging.level", "loud")

	if _, err := Load(); err == nil {
		t.Fatal("invalid config must not load")
	}
}

func TestResolveDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"default", "", "/repo/.ghp/worktrees"},
		{"absolute", "/fast/worktrees", "/fast/worktrees"},
		{"relative", "trees", "/repo/trees"},
		{"home", "~/trees", filepath.Join(home, "trees")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WorktreeConfig{Dir: tt.dir}
			if got := w.ResolveDir("/repo"); got != tt.want {
				t.Errorf("ResolveDir = %q, want %q", got, tt.want)
			}
		})
	}
}
