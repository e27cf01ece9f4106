package hooks

import (
	"context"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
	"github.com/bretwardjames/ghp-sub001/internal/logging"
)

// ShellExecutor runs a prepared hook command line through the shell.
type ShellExecutor interface {
	// Run executes command via `sh -c` in dir (or the process cwd when dir
	// is empty) and returns its combined output.
	Run(ctx context.Context, dir, command string) (string, error)
}

// ShExecutor is the real ShellExecutor backed by os/exec.
type ShExecutor struct{}

var _ ShellExecutor = ShExecutor{}

func (ShExecutor) Run(ctx context.Context, dir, command string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	// The command runs in its own process group, and cancellation kills the
	// whole group. Killing only sh would leave grandchildren holding the
	// output pipe open, blocking CombinedOutput past the deadline.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}
		return err
	}
	cmd.WaitDelay = time.Second
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Decision is an operator's answer to an interactive hook prompt.
type Decision int

const (
	// DecisionContinue proceeds with the workflow despite the hook failure.
	DecisionContinue Decision = iota
	// DecisionAbort stops the workflow.
	DecisionAbort
	// DecisionShowMore re-prompts with the hook's full output.
	DecisionShowMore
)

// Prompter decides whether a failed interactive hook should stop the
// workflow. Implementations own the presentation; the executor owns the
// re-prompt loop for DecisionShowMore.
type Prompter interface {
	Confirm(hook Hook, result Result, fullOutput bool) Decision
}

// NonInteractivePrompter always aborts, which makes interactive hooks behave
// exactly like blocking hooks when no operator is attached.
type NonInteractivePrompter struct{}

var _ Prompter = NonInteractivePrompter{}

func (NonInteractivePrompter) Confirm(Hook, Result, bool) Decision {
	return DecisionAbort
}

// RunOptions adjusts a single hook dispatch.
type RunOptions struct {
	// Cwd overrides the working directory hook commands run in. Empty means
	// the current process directory.
	Cwd string
}

// Runner is the hook dispatch seam workflows depend on.
type Runner interface {
	HasHooks(event EventType) bool
	Run(ctx context.Context, payload Payload, opts RunOptions) []Result
}

// Executor dispatches registered hooks for lifecycle events. Template
// substitution happens sequentially up front, subject to the registry's
// failure policy; the prepared commands then execute concurrently, each
// under its own timeout.
type Executor struct {
	registry *Registry
	shell    ShellExecutor
	prompter Prompter
	logger   *logging.Logger

	// promptMu serializes interactive prompts across concurrent hooks.
	promptMu sync.Mutex
}

var _ Runner = (*Executor)(nil)

// NewExecutor builds an Executor over registry with the real shell and a
// non-interactive prompter.
func NewExecutor(registry *Registry, logger *logging.Logger) *Executor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Executor{
		registry: registry,
		shell:    ShExecutor{},
		prompter: NonInteractivePrompter{},
		logger:   logger,
	}
}

// WithShell swaps the shell seam. Tests use this to fake subprocesses.
func (e *Executor) WithShell(shell ShellExecutor) *Executor {
	e.shell = shell
	return e
}

// WithPrompter attaches an operator prompt for interactive hooks.
func (e *Executor) WithPrompter(prompter Prompter) *Executor {
	e.prompter = prompter
	return e
}

// HasHooks reports whether any enabled hook is registered for event.
func (e *Executor) HasHooks(event EventType) bool {
	return e.registry.HasHooks(event)
}

// preparedHook is a hook whose command has been substituted and is ready to
// execute.
type preparedHook struct {
	hook    Hook
	command string
	slot    int
}

// Run dispatches every enabled hook registered for the payload's event.
// Hook outcomes never surface as Go errors; each hook yields exactly one
// Result, and workflows consult Aborted via ShouldAbort.
func (e *Executor) Run(ctx context.Context, payload Payload, opts RunOptions) []Result {
	event := payload.Event()
	hooks := e.registry.HooksFor(event)
	if len(hooks) == 0 {
		return nil
	}

	results := make([]Result, 0, len(hooks))
	var prepared []preparedHook
	for _, hook := range hooks {
		command, err := Substitute(hook.Command, payload)
		if err != nil {
			e.logger.WithHook(hook.Name).Warn("hook template failed",
				"event", event, "error", err)
			results = append(results, Result{
				HookName: hook.Name,
				Success:  false,
				Error:    err.Error(),
			})
			// Fail-fast stops evaluation of the remaining hooks; the ones
			// already prepared still execute below.
			if e.registry.OnFailure == FailFast {
				break
			}
			continue
		}
		results = append(results, Result{HookName: hook.Name})
		prepared = append(prepared, preparedHook{
			hook:    hook,
			command: command,
			slot:    len(results) - 1,
		})
	}

	var wg sync.WaitGroup
	for _, p := range prepared {
		wg.Add(1)
		go func(p preparedHook) {
			defer wg.Done()
			results[p.slot] = e.runOne(ctx, p.hook, p.command, opts.Cwd)
		}(p)
	}
	wg.Wait()

	return results
}

// runOne executes a single prepared hook under its timeout and classifies
// the outcome by mode.
func (e *Executor) runOne(ctx context.Context, hook Hook, command, cwd string) Result {
	log := e.logger.WithHook(hook.Name)
	log.Debug("executing hook", "event", hook.Event, "mode", hook.Mode)

	runCtx, cancel := context.WithTimeout(ctx, hook.Timeout)
	defer cancel()

	start := time.Now()
	output, err := e.shell.Run(runCtx, cwd, command)
	result := Result{
		HookName: hook.Name,
		Success:  err == nil,
		Output:   output,
		Duration: time.Since(start),
	}

	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			result.Error = errors.NewTimeoutError(hook.Label(), hook.Timeout).Error()
		} else {
			result.Error = err.Error()
		}
		log.Warn("hook failed", "error", result.Error, "duration", result.Duration)
	} else {
		log.Debug("hook succeeded", "duration", result.Duration)
	}

	switch hook.Mode {
	case ModeBlocking:
		result.Aborted = !result.Success
	case ModeInteractive:
		if !result.Success {
			result.Aborted = e.confirmAbort(hook, result)
		}
	}
	return result
}

// confirmAbort asks the operator whether a failed interactive hook should
// stop the workflow. Prompts are serialized so concurrent hooks don't
// interleave on the terminal.
func (e *Executor) confirmAbort(hook Hook, result Result) bool {
	e.promptMu.Lock()
	defer e.promptMu.Unlock()

	fullOutput := false
	for {
		switch e.prompter.Confirm(hook, result, fullOutput) {
		case DecisionContinue:
			return false
		case DecisionShowMore:
			fullOutput = true
		default:
			return true
		}
	}
}
