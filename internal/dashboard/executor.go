package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
	"github.com/bretwardjames/ghp-sub001/internal/hooks"
	"github.com/bretwardjames/ghp-sub001/internal/logging"
	"github.com/bretwardjames/ghp-sub001/internal/validate"
)

// Executor runs every enabled dashboard hook for one render pass.
type Executor struct {
	registry *Registry
	shell    hooks.ShellExecutor
	logger   *logging.Logger
}

// NewExecutor builds an Executor over registry with the real shell.
func NewExecutor(registry *Registry, logger *logging.Logger) *Executor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Executor{
		registry: registry,
		shell:    hooks.ShExecutor{},
		logger:   logger,
	}
}

// WithShell swaps the shell seam. Tests use this to fake subprocesses.
func (e *Executor) WithShell(shell hooks.ShellExecutor) *Executor {
	e.shell = shell
	return e
}

// Run invokes every enabled hook concurrently with the branch and repo
// identifier and collects one result per hook. Results come back in
// registry order; execution order is not guaranteed.
func (e *Executor) Run(ctx context.Context, branch, repo string) []Result {
	enabled := e.registry.Enabled()
	if len(enabled) == 0 {
		return nil
	}

	results := make([]Result, len(enabled))
	var wg sync.WaitGroup
	for i, hook := range enabled {
		wg.Add(1)
		go func(i int, hook Hook) {
			defer wg.Done()
			results[i] = e.runOne(ctx, hook, branch, repo)
		}(i, hook)
	}
	wg.Wait()

	return results
}

// runOne invokes a single hook under its timeout and validates the JSON
// contract on its stdout.
func (e *Executor) runOne(ctx context.Context, hook Hook, branch, repo string) Result {
	log := e.logger.WithHook(hook.Name)
	log.Debug("executing dashboard hook", "branch", branch, "repo", repo)

	command := fmt.Sprintf("%s --branch %s --repo %s",
		hook.Command, validate.ShellQuote(branch), validate.ShellQuote(repo))

	runCtx, cancel := context.WithTimeout(ctx, hook.Timeout)
	defer cancel()

	start := time.Now()
	output, err := e.shell.Run(runCtx, "", command)
	result := Result{
		HookName:    hook.Name,
		DisplayName: hook.DisplayName,
		Category:    hook.Category,
		Duration:    time.Since(start),
	}

	if runCtx.Err() == context.DeadlineExceeded {
		result.Error = errors.NewTimeoutError(hook.Label(), hook.Timeout).Error()
		log.Warn("dashboard hook timed out", "timeout", hook.Timeout)
		return result
	}
	if err != nil {
		result.Error = fmt.Sprintf("hook exited with error: %v", err)
		log.Warn("dashboard hook failed", "error", err)
		return result
	}

	content, err := parseContent([]byte(output))
	if err != nil {
		result.Error = err.Error()
		log.Warn("dashboard hook output rejected", "error", err)
		return result
	}

	result.Success = true
	result.Content = content
	return result
}

// parseContent validates hook stdout against the provider contract. The
// checks run in a fixed order so operators get the most specific message:
// JSON validity, then the success boolean, then the reported error or the
// data shape.
func parseContent(output []byte) (*Content, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, fmt.Errorf("output is not valid JSON: %v", err)
	}

	successRaw, ok := raw["success"]
	var success bool
	if !ok || json.Unmarshal(successRaw, &success) != nil {
		return nil, errors.New("output is missing a boolean 'success' field")
	}

	if !success {
		message := "hook reported failure"
		if errRaw, ok := raw["error"]; ok {
			var reported string
			if json.Unmarshal(errRaw, &reported) == nil && reported != "" {
				message = reported
			}
		}
		return nil, errors.New(message)
	}

	dataRaw, ok := raw["data"]
	if !ok {
		return nil, errors.New("invalid data structure: 'data' field is required")
	}
	var probe struct {
		Title *string          `json:"title"`
		Items *json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(dataRaw, &probe); err != nil {
		return nil, fmt.Errorf("invalid data structure: %v", err)
	}
	if probe.Title == nil {
		return nil, errors.New("invalid data structure: 'data.title' must be a string")
	}
	if probe.Items == nil {
		return nil, errors.New("invalid data structure: 'data.items' must be an array")
	}

	var content Content
	if err := json.Unmarshal(dataRaw, &content); err != nil {
		return nil, fmt.Errorf("invalid data structure: %v", err)
	}
	return &content, nil
}

// GroupByCategory groups results for display, categories sorted
// alphabetically with the default category last.
func GroupByCategory(results []Result) []Group {
	byCategory := make(map[string][]Result)
	for _, r := range results {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i] == DefaultCategory {
			return false
		}
		if categories[j] == DefaultCategory {
			return true
		}
		return categories[i] < categories[j]
	})

	groups := make([]Group, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, Group{Category: c, Results: byCategory[c]})
	}
	return groups
}
