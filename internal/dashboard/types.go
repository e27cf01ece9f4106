// Package dashboard implements the content-provider hook extension point:
// external commands invoked with --branch/--repo arguments that contribute
// JSON content to the branch activity summary. It is deliberately simpler
// than the lifecycle hook path: no modes, no abort semantics, every hook
// runs concurrently and yields exactly one result.
package dashboard

import (
	"encoding/json"
	"time"
)

// DefaultTimeout is the per-hook execution budget when none is configured.
// Dashboard hooks render interactively, so the budget is much tighter than
// the lifecycle hook default.
const DefaultTimeout = 5 * time.Second

// DefaultCategory groups hooks that don't declare one.
const DefaultCategory = "other"

// Hook is a registered content-provider hook.
type Hook struct {
	Name        string
	DisplayName string
	Command     string
	Category    string
	Enabled     bool
	Timeout     time.Duration
}

// Label returns the hook's display name, falling back to its registry name.
func (h Hook) Label() string {
	if h.DisplayName != "" {
		return h.DisplayName
	}
	return h.Name
}

// Item is one line of dashboard content. Providers may emit either a plain
// JSON string or an object with label/value fields.
type Item struct {
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.Label = s
		i.Value = ""
		return nil
	}
	type item Item
	var obj item
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*i = Item(obj)
	return nil
}

// Content is the payload a successful hook contributes to the dashboard.
type Content struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Result is the outcome of invoking one dashboard hook.
type Result struct {
	HookName    string
	DisplayName string
	Category    string
	Success     bool
	Content     *Content
	Error       string
	Duration    time.Duration
}

// Label returns the result's display name, falling back to the hook name.
func (r Result) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.HookName
}

// Group is the set of results sharing one category.
type Group struct {
	Category string
	Results  []Result
}
