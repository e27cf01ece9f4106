// Package internal contains cross-package integration tests exercising the
// hook registry, hook executor, and workflow orchestrator together against a
// real git repository.
package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bretwardjames/ghp-sub001/internal/git"
	"github.com/bretwardjames/ghp-sub001/internal/github"
	"github.com/bretwardjames/ghp-sub001/internal/hooks"
	"github.com/bretwardjames/ghp-sub001/internal/logging"
	"github.com/bretwardjames/ghp-sub001/internal/testutil"
	"github.com/bretwardjames/ghp-sub001/internal/workflow"
)

// noAPI fails loudly if the orchestrator reaches for GitHub during a
// worktree-only flow.
type noAPI struct{}

func (noAPI) CreateIssue(context.Context, string, string, string) (*github.IssueInfo, error) {
	panic("unexpected GitHub call")
}
func (noAPI) AddToProject(context.Context, string, string) (string, error) {
	panic("unexpected GitHub call")
}
func (noAPI) GetStatusField(context.Context, string) (*github.StatusField, error) {
	panic("unexpected GitHub call")
}
func (noAPI) UpdateItemStatus(context.Context, string, string, string, string) (bool, error) {
	panic("unexpected GitHub call")
}
func (noAPI) AddLabelToIssue(context.Context, string, int, string) error {
	panic("unexpected GitHub call")
}
func (noAPI) UpdateAssignees(context.Context, string, int, []string) error {
	panic("unexpected GitHub call")
}
func (noAPI) AddSubIssue(context.Context, string, int, int) error {
	panic("unexpected GitHub call")
}
func (noAPI) FindItemByNumber(context.Context, string, int) (string, error) {
	panic("unexpected GitHub call")
}
func (noAPI) CreatePR(context.Context, string, github.CreatePROptions) (*github.PRInfo, error) {
	panic("unexpected GitHub call")
}

// TestWorktreeWorkflowWithHooks runs the full chain: a YAML-loaded hook
// registry, the real hook executor, and the worktree workflows against a
// real repository. The registered hook writes a marker file through the
// hook's working-directory override, proving side effects land inside the
// new worktree and not the main checkout.
func TestWorktreeWorkflowWithHooks(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test uses real git and sh")
	}

	repoDir := testutil.SetupTestRepo(t)
	wtPath := filepath.Join(t.TempDir(), "wt-5-feature")

	registryPath := filepath.Join(t.TempDir(), "hooks.yaml")
	registryYAML := `
hooks:
  - name: marker
    event: worktree-created
    command: "printf ${branch} > marker.txt"
  - name: farewell
    event: worktree-removed
    command: "true"
`
	if err := os.WriteFile(registryPath, []byte(registryYAML), 0644); err != nil {
		t.Fatal(err)
	}
	registry, err := hooks.LoadRegistry(registryPath)
	if err != nil {
		t.Fatalf("LoadRegistry error = %v", err)
	}
	if len(registry.Warnings()) != 0 {
		t.Fatalf("warnings = %v", registry.Warnings())
	}

	gitClient := git.NewClient(repoDir)
	runner := hooks.NewExecutor(registry, logging.Nop())
	orch := workflow.New(noAPI{}, gitClient, runner, logging.Nop())

	repo := git.RepoInfo{Owner: "alice", Name: "widgets", FullName: "alice/widgets"}
	ctx := context.Background()

	created := orch.CreateWorktree(ctx, workflow.CreateWorktreeOptions{
		Repo:   repo,
		Branch: "alice/5-feature",
		Path:   wtPath,
	})
	if !created.Success {
		t.Fatalf("create: %+v", created)
	}
	if len(created.HookResults) != 1 || !created.HookResults[0].Success {
		t.Fatalf("hook results: %+v", created.HookResults)
	}

	// The marker must be inside the worktree, written relative to the
	// hook's cwd override.
	data, err := os.ReadFile(filepath.Join(wtPath, "marker.txt"))
	if err != nil {
		t.Fatalf("marker not written in worktree: %v", err)
	}
	if string(data) != "alice/5-feature" {
		t.Errorf("marker = %q", data)
	}
	if _, err := os.Stat(filepath.Join(repoDir, "marker.txt")); !os.IsNotExist(err) {
		t.Error("marker leaked into the main checkout")
	}

	// Second creation is idempotent and silent.
	again := orch.CreateWorktree(ctx, workflow.CreateWorktreeOptions{
		Repo:   repo,
		Branch: "alice/5-feature",
		Path:   wtPath,
	})
	if !again.Success || !again.AlreadyExisted || len(again.HookResults) != 0 {
		t.Fatalf("second create: %+v", again)
	}

	removed := orch.RemoveWorktree(ctx, workflow.RemoveWorktreeOptions{
		Repo:        repo,
		IssueNumber: 5,
	})
	if !removed.Success {
		t.Fatalf("remove: %+v", removed)
	}
	if removed.Branch != "alice/5-feature" {
		t.Errorf("Branch = %q", removed.Branch)
	}
	if len(removed.HookResults) != 1 || !removed.HookResults[0].Success {
		t.Errorf("hook results: %+v", removed.HookResults)
	}
	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Error("worktree directory still present after removal")
	}
}
