package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bretwardjames/ghp-sub001/internal/errors"
)

type hookRecord struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name,omitempty"`
	Command     string `yaml:"command"`
	Category    string `yaml:"category,omitempty"`
	Enabled     *bool  `yaml:"enabled,omitempty"`
	TimeoutMs   int64  `yaml:"timeout_ms,omitempty"`
}

type registryFile struct {
	Hooks []yaml.Node `yaml:"hooks"`
}

// Registry is the durable store of dashboard hooks. Like the lifecycle hook
// registry, it is read fresh per invocation and malformed entries are
// dropped with a warning instead of failing the load.
type Registry struct {
	path     string
	hooks    []Hook
	warnings []string
}

// LoadRegistry reads the dashboard hook registry at path. A missing file is
// an empty registry.
func LoadRegistry(path string) (*Registry, error) {
	r := &Registry{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, errors.Wrapf(err, "failed to read dashboard registry %s", path)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse dashboard registry %s", path)
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

func (rec hookRecord) toHook() (Hook, error) {
	if rec.Name == "" {
		return Hook{}, errors.New("hook name is required")
	}
	if rec.Command == "" {
		return Hook{}, fmt.Errorf("hook %q has no command", rec.Name)
	}

	category := rec.Category
	if category == "" {
		category = DefaultCategory
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
		Name:        rec.Name,
		DisplayName: rec.DisplayName,
		Command:     rec.Command,
		Category:    category,
		Enabled:     enabled,
		Timeout:     timeout,
	}, nil
}

// Save writes the registry back to its file.
func (r *Registry) Save() error {
	var file registryFile
	for _, h := range r.hooks {
		enabled := h.Enabled
		rec := hookRecord{
			Name:        h.Name,
			DisplayName: h.DisplayName,
			Command:     h.Command,
			Category:    h.Category,
			Enabled:     &enabled,
			TimeoutMs:   h.Timeout.Milliseconds(),
		}
		var node yaml.Node
		if err := node.Encode(rec); err != nil {
			return errors.Wrapf(err, "failed to encode hook %q", h.Name)
		}
		file.Hooks = append(file.Hooks, node)
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return errors.Wrap(err, "failed to marshal dashboard registry")
	}
	if dir := filepath.Dir(r.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create registry directory %s", dir)
		}
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write dashboard registry %s", r.path)
	}
	return nil
}

// Warnings returns the entries dropped during load.
func (r *Registry) Warnings() []string {
	return r.warnings
}

// All returns every registered hook in file order.
func (r *Registry) All() []Hook {
	out := make([]Hook, len(r.hooks))
	copy(out, r.hooks)
	return out
}

// Enabled returns the enabled hooks in file order.
func (r *Registry) Enabled() []Hook {
	var out []Hook
	for _, h := range r.hooks {
		if h.Enabled {
			out = append(out, h)
		}
	}
	return out
}

// Add registers a hook. The name must be unique within the registry.
func (r *Registry) Add(hook Hook) error {
	if hook.Name == "" {
		return errors.NewValidationError("hook name", hook.Name, "must not be empty")
	}
	if hook.Command == "" {
		return errors.NewValidationError("hook command", hook.Command, "must not be empty")
	}
	if hook.Category == "" {
		hook.Category = DefaultCategory
	}
	if hook.Timeout <= 0 {
		hook.Timeout = DefaultTimeout
	}
	for _, existing := range r.hooks {
		if existing.Name == hook.Name {
			return errors.NewAlreadyExistsError("dashboard hook", hook.Name)
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
	return errors.NewNotFoundError("dashboard hook", name).WithCause(errors.ErrHookNotFound)
}

// SetEnabled flips a hook's enable flag.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	for i := range r.hooks {
		if r.hooks[i].Name == name {
			r.hooks[i].Enabled = enabled
			return nil
		}
	}
	return errors.NewNotFoundError("dashboard hook", name).WithCause(errors.ErrHookNotFound)
}
