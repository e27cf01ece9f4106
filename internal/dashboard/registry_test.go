package dashboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRegistryDefaultsAndDrops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	content := `
hooks:
  - name: ci
    command: ghp-ci-status
  - name: no-command
  - name: tuned
    command: ghp-links
    category: links
    enabled: false
    timeout_ms: 800
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry error = %v", err)
	}
	hooks := r.All()
	if len(hooks) != 2 {
		t.Fatalf("got %d hooks, want 2", len(hooks))
	}

	ci := hooks[0]
	if ci.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q default", ci.Category, DefaultCategory)
	}
	if !ci.Enabled || ci.Timeout != DefaultTimeout {
		t.Errorf("defaults not applied: %+v", ci)
	}

	tuned := hooks[1]
	if tuned.Enabled || tuned.Timeout != 800*time.Millisecond || tuned.Category != "links" {
		t.Errorf("explicit fields not honored: %+v", tuned)
	}

	if len(r.Warnings()) != 1 {
		t.Errorf("warnings = %v, want one for the commandless entry", r.Warnings())
	}

	if got := r.Enabled(); len(got) != 1 || got[0].Name != "ci" {
		t.Errorf("Enabled = %+v", got)
	}
}

func TestRegistrySaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	r := &Registry{path: path}
	if err := r.Add(Hook{Name: "ci", Command: "ghp-ci-status", Enabled: true}); err != nil {
		t.Fatalf("Add error = %v", err)
	}
	if err := r.Save(); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	loaded, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry error = %v", err)
	}
	hooks := loaded.All()
	if len(hooks) != 1 || hooks[0].Name != "ci" || hooks[0].Category != DefaultCategory {
		t.Errorf("round trip = %+v", hooks)
	}
}
