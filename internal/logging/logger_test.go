package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFileLogging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "ghp.log")

	logger, err := New(Options{Level: "debug", File: logFile, Quiet: true})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	logger.Info("worktree created", "branch", "alice/42-fix", "path", "/wt/42")
	logger.Debug("hook executed", "hook", "notify")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "worktree created") {
		t.Errorf("log file missing info entry: %q", content)
	}
	if !strings.Contains(content, "alice/42-fix") {
		t.Errorf("log file missing attributes: %q", content)
	}
	if !strings.Contains(content, "hook executed") {
		t.Errorf("log file missing debug entry at debug level: %q", content)
	}
}

func TestLevelFiltering(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "ghp.log")

	logger, err := New(Options{Level: "warn", File: logFile, Quiet: true})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	logger.Info("should be filtered")
	logger.Warn("should appear")
	_ = logger.Close()

	data, _ := os.ReadFile(logFile)
	content := string(data)
	if strings.Contains(content, "should be filtered") {
		t.Error("info entry leaked past warn level")
	}
	if !strings.Contains(content, "should appear") {
		t.Error("warn entry missing")
	}
}

func TestChildLoggers(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "ghp.log")

	logger, err := New(Options{File: logFile, Quiet: true})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	child := logger.WithWorkflow("create-pr").WithHook("lint")
	child.Info("checkpoint")

	// Parent must not inherit the child's attributes.
	logger.Info("plain entry")
	_ = logger.Close()

	data, _ := os.ReadFile(logFile)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "workflow=create-pr") || !strings.Contains(lines[0], "hook=lint") {
		t.Errorf("child entry missing attributes: %q", lines[0])
	}
	if strings.Contains(lines[1], "workflow=") {
		t.Errorf("parent entry inherited child attributes: %q", lines[1])
	}
}

func TestNop(t *testing.T) {
	// Must not panic or write anywhere.
	logger := Nop()
	logger.Info("discarded")
	logger.With("k", "v").Error("also discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
}
