// Package git runs git subcommands against a working directory and normalizes
// failures into structured errors carrying command, stderr, exit code, and
// cwd. It provides the branch and worktree primitives the workflow
// orchestrator composes, plus repository identity helpers.
//
// This file provides the command execution layer. The CommandExecutor
// interface abstracts subprocess execution so tests can mock git commands
// without executing them.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
)

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Run executes a command in dir and returns stdout and stderr separately.
	// The returned error is the raw execution error; callers classify it.
	Run(ctx context.Context, dir string, name string, args ...string) (stdout, stderr string, err error)
}

// CLICommandExecutor executes commands using os/exec.
type CLICommandExecutor struct{}

// NewCLICommandExecutor creates a new CLI command executor.
func NewCLICommandExecutor() *CLICommandExecutor {
	return &CLICommandExecutor{}
}

// Run executes a command and returns stdout and stderr.
func (e *CLICommandExecutor) Run(ctx context.Context, dir string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// exitCode extracts the subprocess exit code from an execution error.
// Returns -1 when the process never ran (spawn failure, context canceled).
// Matching on the ExitCode method rather than *exec.ExitError lets mock
// executors report exit codes without spawning processes.
func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}

// commandLine renders a command for error context.
func commandLine(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}
