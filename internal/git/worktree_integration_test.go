package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bretwardjames/ghp-sub001/internal/testutil"
)

// These tests exercise the real git CLI against throwaway repositories.

func TestCreateWorktreeIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	repoDir := testutil.SetupTestRepo(t)
	client := NewClient(repoDir)
	ctx := context.Background()

	t.Run("new branch from HEAD", func(t *testing.T) {
		wtPath := filepath.Join(t.TempDir(), "wt-new")
		info, err := client.CreateWorktree(ctx, wtPath, "feature/new-branch")
		if err != nil {
			t.Fatalf("CreateWorktree error = %v", err)
		}
		if info.Name != "wt-new" {
			t.Errorf("Name = %q, want wt-new", info.Name)
		}
		if _, err := os.Stat(wtPath); err != nil {
			t.Errorf("worktree directory missing: %v", err)
		}

		exists, err := client.BranchExists(ctx, "feature/new-branch")
		if err != nil || !exists {
			t.Errorf("BranchExists = %v, %v; want true", exists, err)
		}
	})

	t.Run("existing local branch", func(t *testing.T) {
		testutil.CreateBranch(t, repoDir, "feature/existing")
		wtPath := filepath.Join(t.TempDir(), "wt-existing")

		if _, err := client.CreateWorktree(ctx, wtPath, "feature/existing"); err != nil {
			t.Fatalf("CreateWorktree error = %v", err)
		}

		wt, err := client.FindWorktreeForBranch(ctx, "feature/existing")
		if err != nil {
			t.Fatalf("FindWorktreeForBranch error = %v", err)
		}
		if wt == nil {
			t.Fatal("worktree not found after creation")
		}
	})

	t.Run("remove", func(t *testing.T) {
		wtPath := filepath.Join(t.TempDir(), "wt-remove")
		if _, err := client.CreateWorktree(ctx, wtPath, "feature/remove-me"); err != nil {
			t.Fatalf("CreateWorktree error = %v", err)
		}
		if err := client.RemoveWorktree(ctx, wtPath); err != nil {
			t.Fatalf("RemoveWorktree error = %v", err)
		}
		if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
			t.Errorf("worktree directory still present after removal")
		}

		wt, err := client.FindWorktreeForBranch(ctx, "feature/remove-me")
		if err != nil {
			t.Fatalf("FindWorktreeForBranch error = %v", err)
		}
		if wt != nil {
			t.Errorf("worktree still listed after removal: %+v", wt)
		}
	})
}

func TestCreateWorktreeFromRemoteBranchIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	repoDir, _ := testutil.SetupTestRepoWithRemote(t)
	client := NewClient(repoDir)
	ctx := context.Background()

	// Publish a branch to the remote, then delete it locally so that only
	// origin/feature-remote exists.
	testutil.CreateBranch(t, repoDir, "feature-remote")
	if _, err := client.run(ctx, "", "push failed", "push", "origin", "feature-remote"); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, err := client.run(ctx, "", "branch delete failed", "branch", "-D", "feature-remote"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	wtPath := filepath.Join(t.TempDir(), "wt-remote")
	if _, err := client.CreateWorktree(ctx, wtPath, "feature-remote"); err != nil {
		t.Fatalf("CreateWorktree error = %v", err)
	}

	wt, err := client.FindWorktreeForBranch(ctx, "feature-remote")
	if err != nil || wt == nil {
		t.Fatalf("FindWorktreeForBranch = %v, %v; want tracked worktree", wt, err)
	}
}

func TestIsGitRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	repoDir := testutil.SetupTestRepo(t)
	client := NewClient(repoDir)
	ctx := context.Background()

	ok, err := client.IsGitRepository(ctx, repoDir)
	if err != nil || !ok {
		t.Errorf("IsGitRepository(repo) = %v, %v; want true", ok, err)
	}

	plain := t.TempDir()
	ok, err = client.IsGitRepository(ctx, plain)
	if err != nil || ok {
		t.Errorf("IsGitRepository(plain dir) = %v, %v; want false, nil", ok, err)
	}
}
