package workflow

import (
	"github.com/bretwardjames/ghp-sub001/internal/errors"
	"github.com/bretwardjames/ghp-sub001/internal/git"
	"github.com/bretwardjames/ghp-sub001/internal/github"
	"github.com/bretwardjames/ghp-sub001/internal/hooks"
	"github.com/bretwardjames/ghp-sub001/internal/logging"
)

// Orchestrator runs the workflows. It owns no state beyond its
// collaborators; every invocation is a single finite call.
type Orchestrator struct {
	api    github.API
	git    *git.Client
	hooks  hooks.Runner
	logger *logging.Logger
}

// New builds an Orchestrator.
func New(api github.API, gitClient *git.Client, runner hooks.Runner, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Orchestrator{
		api:    api,
		git:    gitClient,
		hooks:  runner,
		logger: logger,
	}
}

// errorString formats a workflow-level error. Git failures with captured
// stderr include the actual git diagnostic so operators see more than the
// generic message.
func errorString(err error) string {
	if gitErr := errors.AsGitError(err); gitErr != nil && gitErr.Stderr != "" {
		return gitErr.Message() + "\n" + gitErr.Stderr
	}
	return err.Error()
}
