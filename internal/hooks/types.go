// Package hooks implements the lifecycle event hook extension point: a
// user-editable registry of named external commands keyed by event type, and
// an executor that substitutes payload values into each command, runs it
// under a timeout, and classifies the outcome by execution mode.
package hooks

import (
	"time"
)

// EventType is a lifecycle transition that hooks can attach to.
type EventType string

// The fixed set of lifecycle event types.
const (
	EventIssueCreated    EventType = "issue-created"
	EventIssueStarted    EventType = "issue-started"
	EventPrePR           EventType = "pre-pr"
	EventPRCreating      EventType = "pr-creating"
	EventPRCreated       EventType = "pr-created"
	EventPRMerged        EventType = "pr-merged"
	EventWorktreeCreated EventType = "worktree-created"
	EventWorktreeRemoved EventType = "worktree-removed"
)

// AllEvents lists every lifecycle event type in firing order.
var AllEvents = []EventType{
	EventIssueCreated,
	EventIssueStarted,
	EventPrePR,
	EventPRCreating,
	EventPRCreated,
	EventPRMerged,
	EventWorktreeCreated,
	EventWorktreeRemoved,
}

// Valid reports whether e is one of the lifecycle event types.
func (e EventType) Valid() bool {
	for _, known := range AllEvents {
		if e == known {
			return true
		}
	}
	return false
}

// Mode controls how a hook's exit status affects the triggering workflow.
type Mode string

const (
	// ModeFireAndForget records the outcome but never halts the workflow.
	ModeFireAndForget Mode = "fire-and-forget"
	// ModeBlocking marks a non-zero exit as an abort; the workflow stops
	// unless the caller forces past it.
	ModeBlocking Mode = "blocking"
	// ModeInteractive surfaces output and asks the operator whether to
	// continue. In non-interactive contexts it behaves as blocking.
	ModeInteractive Mode = "interactive"
)

// Valid reports whether m is a known execution mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeFireAndForget, ModeBlocking, ModeInteractive:
		return true
	}
	return false
}

// FailurePolicy governs whether one hook's internal error (template failure,
// not a classified exit code) stops evaluation of the remaining hooks.
type FailurePolicy string

const (
	// FailFast stops evaluating further hooks after an internal error.
	FailFast FailurePolicy = "fail-fast"
	// Continue evaluates every hook regardless of internal errors.
	Continue FailurePolicy = "continue"
)

// DefaultTimeout is the per-hook execution budget when none is configured.
// Event hooks default higher than dashboard hooks because they may
// legitimately do heavier work.
const DefaultTimeout = 30 * time.Second

// Hook is a registered lifecycle hook.
type Hook struct {
	Name           string
	Event          EventType
	Command        string
	DisplayName    string
	Enabled        bool
	Mode           Mode
	Timeout        time.Duration
	ContinuePrompt string
}

// Label returns the hook's display name, falling back to its registry name.
func (h Hook) Label() string {
	if h.DisplayName != "" {
		return h.DisplayName
	}
	return h.Name
}

// Result is the uniform outcome of executing one hook.
type Result struct {
	HookName string
	Success  bool
	Output   string
	Error    string
	Aborted  bool
	Duration time.Duration
}

// ShouldAbort reports whether any hook result demands the workflow stop.
func ShouldAbort(results []Result) bool {
	for _, r := range results {
		if r.Aborted {
			return true
		}
	}
	return false
}
