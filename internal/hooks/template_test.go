package hooks

import (
	"strings"
	"testing"

	"github.com/bretwardjames/ghp-sub001/internal/git"
	"github.com/bretwardjames/ghp-sub001/internal/github"
)

var testRepo = git.RepoInfo{Owner: "alice", Name: "widgets", FullName: "alice/widgets"}

func TestSubstituteIssueVariables(t *testing.T) {
	payload := IssueCreatedPayload{
		Repo: testRepo,
		Issue: github.IssueInfo{
			Number: 42,
			Title:  "Fix the frobnicator",
			URL:    "https://github.com/alice/widgets/issues/42",
		},
	}

	got, err := Substitute("notify --issue ${issue.number} --title ${issue.title}", payload)
	if err != nil {
		t.Fatalf("Substitute error = %v", err)
	}
	want := `notify --issue '42' --title 'Fix the frobnicator'`
	if got != want {
		t.Errorf("Substitute = %q, want %q", got, want)
	}
}

func TestSubstituteShellQuoting(t *testing.T) {
	payload := IssueCreatedPayload{
		Repo:  testRepo,
		Issue: github.IssueInfo{Number: 7, Title: "it's broken; rm -rf /"},
	}

	got, err := Substitute("echo ${issue.title}", payload)
	if err != nil {
		t.Fatalf("Substitute error = %v", err)
	}
	want := `echo 'it'\''s broken; rm -rf /'`
	if got != want {
		t.Errorf("Substitute = %q, want %q", got, want)
	}
}

func TestSubstituteUnknownVariable(t *testing.T) {
	payload := PrePRPayload{Repo: testRepo, Branch: "alice/42-fix"}

	_, err := Substitute("check ${pr.number}", payload)
	if err == nil {
		t.Fatal("expected error for unknown variable")
	}
	if !strings.Contains(err.Error(), "pr.number") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestSubstituteNoPlaceholders(t *testing.T) {
	payload := PRMergedPayload{Repo: testRepo, PR: github.PRInfo{Number: 9}}

	got, err := Substitute("make deploy", payload)
	if err != nil {
		t.Fatalf("Substitute error = %v", err)
	}
	if got != "make deploy" {
		t.Errorf("Substitute = %q, want unchanged command", got)
	}
}

func TestPayloadJSONVariable(t *testing.T) {
	payload := IssueStartedPayload{
		Repo:   testRepo,
		Issue:  github.IssueInfo{Number: 3, Title: "Title"},
		Branch: "alice/3-title",
	}

	vars, err := payload.TemplateVars()
	if err != nil {
		t.Fatalf("TemplateVars error = %v", err)
	}
	if !strings.Contains(vars["issue.json"], `"number":3`) {
		t.Errorf("issue.json missing number: %q", vars["issue.json"])
	}
	if vars["branch"] != "alice/3-title" {
		t.Errorf("branch = %q", vars["branch"])
	}
}

func TestWorktreePayloadVariables(t *testing.T) {
	payload := WorktreeCreatedPayload{
		Repo:     testRepo,
		Branch:   "alice/5-thing",
		Worktree: git.NewWorktreeInfo("/work/trees/5-thing"),
	}

	vars, err := payload.TemplateVars()
	if err != nil {
		t.Fatalf("TemplateVars error = %v", err)
	}
	if vars["worktree.path"] != "/work/trees/5-thing" {
		t.Errorf("worktree.path = %q", vars["worktree.path"])
	}
	if vars["worktree.name"] != "5-thing" {
		t.Errorf("worktree.name = %q", vars["worktree.name"])
	}
	if _, ok := vars["issue.number"]; ok {
		t.Error("issue variables should be absent without an issue")
	}
}

func TestPrePRPayloadFiles(t *testing.T) {
	payload := PrePRPayload{
		Repo:         testRepo,
		Branch:       "b",
		DiffStat:     "2 files changed",
		ChangedFiles: []string{"a.go", "b.go"},
	}

	vars, err := payload.TemplateVars()
	if err != nil {
		t.Fatalf("TemplateVars error = %v", err)
	}
	if vars["diff.files"] != "a.go\nb.go" {
		t.Errorf("diff.files = %q", vars["diff.files"])
	}
}
