package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bretwardjames/ghp-sub001/internal/logging"
)

func newTestExecutor(t *testing.T, hooks ...Hook) *Executor {
	t.Helper()
	r := &Registry{}
	for _, h := range hooks {
		if err := r.Add(h); err != nil {
			t.Fatalf("Add(%q) error = %v", h.Name, err)
		}
	}
	return NewExecutor(r, logging.Nop())
}

func TestRunValidContract(t *testing.T) {
	e := newTestExecutor(t, Hook{
		Name:     "ci",
		Command:  `echo '{"success":true,"data":{"title":"CI Status","items":["build: green","tests: 312 passed"]}}' #`,
		Category: "status",
		Enabled:  true,
	})

	results := e.Run(context.Background(), "alice/42-fix", "alice/widgets")
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	r := results[0]
	if !r.Success {
		t.Fatalf("result = %+v", r)
	}
	if r.Content.Title != "CI Status" {
		t.Errorf("Title = %q", r.Content.Title)
	}
	if len(r.Content.Items) != 2 || r.Content.Items[0].Label != "build: green" {
		t.Errorf("Items = %+v", r.Content.Items)
	}
	if r.Category != "status" {
		t.Errorf("Category = %q", r.Category)
	}
}

func TestRunObjectItems(t *testing.T) {
	e := newTestExecutor(t, Hook{
		Name:    "links",
		Command: `echo '{"success":true,"data":{"title":"Links","items":[{"label":"PR","value":"https://example.test/pr/7"}]}}' #`,
		Enabled: true,
	})

	results := e.Run(context.Background(), "b", "o/r")
	if !results[0].Success {
		t.Fatalf("result = %+v", results[0])
	}
	item := results[0].Content.Items[0]
	if item.Label != "PR" || item.Value != "https://example.test/pr/7" {
		t.Errorf("item = %+v", item)
	}
}

func TestRunPassesEscapedArguments(t *testing.T) {
	// The hook echoes its arguments back as the title so the test can see
	// exactly what the shell delivered.
	e := newTestExecutor(t, Hook{
		Name:    "echo-args",
		Command: `sh -c 'printf "{\"success\":true,\"data\":{\"title\":\"$2 $4\",\"items\":[]}}"' --`,
		Enabled: true,
	})

	results := e.Run(context.Background(), "feat/it's-42", "alice/widgets")
	if !results[0].Success {
		t.Fatalf("result = %+v", results[0])
	}
	if got := results[0].Content.Title; got != "feat/it's-42 alice/widgets" {
		t.Errorf("delivered args = %q", got)
	}
}

func TestRunContractValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantErr string
	}{
		{"not json", `garbage`, "not valid JSON"},
		{"missing success", `{"data":{"title":"T","items":[]}}`, "missing a boolean 'success'"},
		{"non-boolean success", `{"success":"yes"}`, "missing a boolean 'success'"},
		{"reported failure", `{"success":false,"error":"upstream down"}`, "upstream down"},
		{"reported failure no message", `{"success":false}`, "hook reported failure"},
		{"missing data", `{"success":true}`, "invalid data structure"},
		{"missing items", `{"success":true,"data":{"title":"T"}}`, "invalid data structure"},
		{"missing title", `{"success":true,"data":{"items":[]}}`, "invalid data structure"},
		{"items not array", `{"success":true,"data":{"title":"T","items":"nope"}}`, "invalid data structure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := parseContent([]byte(tt.output))
			if err == nil {
				t.Fatalf("parseContent accepted %q: %+v", tt.output, content)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestRunTimeout(t *testing.T) {
	e := newTestExecutor(t, Hook{
		Name:    "slow",
		Command: "sleep 5; echo",
		Enabled: true,
		Timeout: 50 * time.Millisecond,
	})

	start := time.Now()
	results := e.Run(context.Background(), "b", "o/r")
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout not enforced, took %v", elapsed)
	}
	if results[0].Success {
		t.Error("timed-out hook should fail")
	}
	if !strings.Contains(results[0].Error, "timed out after 50ms") {
		t.Errorf("Error = %q, want timeout classification", results[0].Error)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	e := newTestExecutor(t, Hook{Name: "broken", Command: "exit 3 #", Enabled: true})

	results := e.Run(context.Background(), "b", "o/r")
	if results[0].Success {
		t.Error("non-zero exit should fail")
	}
	if !strings.Contains(results[0].Error, "exited with error") {
		t.Errorf("Error = %q", results[0].Error)
	}
}

func TestRunConcurrent(t *testing.T) {
	payload := `sleep 0.3; echo '{"success":true,"data":{"title":"T","items":[]}}' #`
	e := newTestExecutor(t,
		Hook{Name: "a", Command: payload, Enabled: true},
		Hook{Name: "b", Command: payload, Enabled: true},
		Hook{Name: "c", Command: payload, Enabled: true},
	)

	start := time.Now()
	results := e.Run(context.Background(), "b", "o/r")
	elapsed := time.Since(start)

	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for _, r := range results {
		if !r.Success {
			t.Errorf("%s failed: %+v", r.HookName, r)
		}
	}
	// Serial execution would take at least 0.9s.
	if elapsed > 700*time.Millisecond {
		t.Errorf("hooks appear to run serially: %v", elapsed)
	}
}

func TestRunSkipsDisabled(t *testing.T) {
	e := newTestExecutor(t,
		Hook{Name: "off", Command: "echo", Enabled: false},
	)
	if results := e.Run(context.Background(), "b", "o/r"); results != nil {
		t.Errorf("results = %+v, want nil", results)
	}
}

func TestGroupByCategory(t *testing.T) {
	results := []Result{
		{HookName: "a", Category: "other"},
		{HookName: "b", Category: "status"},
		{HookName: "c", Category: "links"},
		{HookName: "d", Category: "status"},
	}

	groups := GroupByCategory(results)
	if len(groups) != 3 {
		t.Fatalf("got %d groups", len(groups))
	}
	if groups[0].Category != "links" || groups[1].Category != "status" {
		t.Errorf("order = %q, %q", groups[0].Category, groups[1].Category)
	}
	if groups[2].Category != "other" {
		t.Errorf("default category should sort last, got %q", groups[2].Category)
	}
	if len(groups[1].Results) != 2 {
		t.Errorf("status group = %+v", groups[1].Results)
	}
}
