package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
)

// hookRecord is the on-disk shape of one hook. Enabled is a pointer so a
// hand-edited file can omit it and get the default of true.
type hookRecord struct {
	Name           string `yaml:"name"`
	Event          string `yaml:"event"`
	Command        string `yaml:"command"`
	DisplayName    string `yaml:"display_name,omitempty"`
	Enabled        *bool  `yaml:"enabled,omitempty"`
	Mode           string `yaml:"mode,omitempty"`
	TimeoutMs      int64  `yaml:"timeout_ms,omitempty"`
	ContinuePrompt string `yaml:"continue_prompt,omitempty"`
}

// registryFile is the on-disk shape of the registry. Hooks decode lazily so
// one malformed record doesn't take the whole file down.
type registryFile struct {
	OnFailure string      `yaml:"on_failure,omitempty"`
	Hooks     []yaml.Node `yaml:"hooks"`
}

// Registry is the durable store of event hooks, loaded fresh from its file
// on each invocation and written back on mutation. It assumes single-writer
// semantics; concurrent processes mutating the same file are not coordinated.
type Registry struct {
	path      string
	OnFailure FailurePolicy
	hooks     []Hook
	warnings  []string
}

// LoadRegistry reads the registry file at path. A missing file is an empty
// registry. Malformed or invalid hook entries are dropped, with a warning
// recorded per entry, rather than failing the load.
func LoadRegistry(path string) (*Registry, error) {
	r := &Registry{path: path, OnFailure: FailFast}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, errors.Wrapf(err, "failed to read hook registry %s", path)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse hook registry %s", path)
	}

	if file.OnFailure != "" {
		switch FailurePolicy(file.OnFailure) {
		case FailFast, Continue:
			r.OnFailure = FailurePolicy(file.OnFailure)
		default:
			r.warnings = append(r.warnings,
				fmt.Sprintf("unknown on_failure policy %q, using fail-fast", file.OnFailure))
		}
	}

	seen := make(map[string]bool)
	for i, node := range file.Hooks {
		var rec hookRecord
		if err := node.Decode(&rec); err != nil {
			r.warnings = append(r.warnings, fmt.Sprintf("dropping hooks[%d]: %v", i, err))
			continue
		}
		hook, err := rec.toHook()
		if err != nil {
			r.warnings = append(r.warnings, fmt.Sprintf("dropping hooks[%d]: %v", i, err))
			continue
		}
		if seen[hook.Name] {
			r.warnings = append(r.warnings,
				fmt.Sprintf("dropping hooks[%d]: duplicate hook name %q", i, hook.Name))
			continue
		}
		seen[hook.Name] = true
		r.hooks = append(r.hooks, hook)
	}

	return r, nil
}

// toHook validates a record and applies defaults.
func (rec hookRecord) toHook() (Hook, error) {
	if rec.Name == "" {
		return Hook{}, errors.New("hook name is required")
	}
	if rec.Command == "" {
		return Hook{}, fmt.Errorf("hook %q has no command", rec.Name)
	}
	event := EventType(rec.Event)
	if !event.Valid() {
		return Hook{}, fmt.Errorf("hook %q: %w: %q", rec.Name, errors.ErrUnknownEvent, rec.Event)
	}

	mode := Mode(rec.Mode)
	if rec.Mode == "" {
		mode = ModeFireAndForget
	}
	if !mode.Valid() {
		return Hook{}, fmt.Errorf("hook %q has invalid mode %q", rec.Name, rec.Mode)
	}

	timeout := DefaultTimeout
	if rec.TimeoutMs > 0 {
		timeout = time.Duration(rec.TimeoutMs) * time.Millisecond
	}

	enabled := true
	if rec.Enabled != nil {
		enabled = *rec.Enabled
	}

	return Hook{
		Name:           rec.Name,
		Event:          event,
		Command:        rec.Command,
		DisplayName:    rec.DisplayName,
		Enabled:        enabled,
		Mode:           mode,
		Timeout:        timeout,
		ContinuePrompt: rec.ContinuePrompt,
	}, nil
}

// Save writes the registry back to its file.
func (r *Registry) Save() error {
	file := registryFile{OnFailure: string(r.OnFailure)}
	for _, h := range r.hooks {
		enabled := h.Enabled
		rec := hookRecord{
			Name:           h.Name,
			Event:          string(h.Event),
			Command:        h.Command,
			DisplayName:    h.DisplayName,
			Enabled:        &enabled,
			Mode:           string(h.Mode),
			TimeoutMs:      h.Timeout.Milliseconds(),
			ContinuePrompt: h.ContinuePrompt,
		}
		var node yaml.Node
		if err := node.Encode(rec); err != nil {
			return errors.Wrapf(err, "failed to encode hook %q", h.Name)
		}
		file.Hooks = append(file.Hooks, node)
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return errors.Wrap(err, "failed to marshal hook registry")
	}
	if dir := filepath.Dir(r.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create registry directory %s", dir)
		}
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write hook registry %s", r.path)
	}
	return nil
}

// Warnings returns the entries dropped or corrected during load.
func (r *Registry) Warnings() []string {
	return r.warnings
}

// All returns every registered hook in file order.
func (r *Registry) All() []Hook {
	out := make([]Hook, len(r.hooks))
	copy(out, r.hooks)
	return out
}

// HooksFor returns the enabled hooks registered for event, in file order.
func (r *Registry) HooksFor(event EventType) []Hook {
	var out []Hook
	for _, h := range r.hooks {
		if h.Event == event && h.Enabled {
			out = append(out, h)
		}
	}
	return out
}

// HasHooks reports whether any enabled hook is registered for event.
func (r *Registry) HasHooks(event EventType) bool {
	return len(r.HooksFor(event)) > 0
}

// Get returns the hook registered under name.
func (r *Registry) Get(name string) (Hook, error) {
	for _, h := range r.hooks {
		if h.Name == name {
			return h, nil
		}
	}
	return Hook{}, errors.NewNotFoundError("hook", name).WithCause(errors.ErrHookNotFound)
}

// Add registers a hook. The name must be unique within the registry.
func (r *Registry) Add(hook Hook) error {
	if hook.Name == "" {
		return errors.NewValidationError("hook name", hook.Name, "must not be empty")
	}
	if hook.Command == "" {
		return errors.NewValidationError("hook command", hook.Command, "must not be empty")
	}
	if !hook.Event.Valid() {
		return errors.NewValidationError("hook event", string(hook.Event), "is not a lifecycle event")
	}
	if hook.Mode == "" {
		hook.Mode = ModeFireAndForget
	}
	if !hook.Mode.Valid() {
		return errors.NewValidationError("hook mode", string(hook.Mode), "must be fire-and-forget, blocking, or interactive")
	}
	if hook.Timeout <= 0 {
		hook.Timeout = DefaultTimeout
	}
	for _, existing := range r.hooks {
		if existing.Name == hook.Name {
			return errors.NewAlreadyExistsError("hook", hook.Name)
		}
	}
	r.hooks = append(r.hooks, hook)
	return nil
}

// Remove deletes the hook registered under name.
func (r *Registry) Remove(name string) error {
	for i, h := range r.hooks {
		if h.Name == name {
			r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("hook", name).WithCause(errors.ErrHookNotFound)
}

// SetEnabled flips a hook's enable flag.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	for i := range r.hooks {
		if r.hooks[i].Name == name {
			r.hooks[i].Enabled = enabled
			return nil
		}
	}
	return errors.NewNotFoundError("hook", name).WithCause(errors.ErrHookNotFound)
}
