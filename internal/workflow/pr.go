package workflow

import (
	"context"

	"github.com/bretwardjames/ghp-sub001/internal/github"
	"github.com/bretwardjames/ghp-sub001/internal/hooks"
)

// CreatePR opens a pull request with three hook checkpoints around the
// creation call: pre-pr and pr-creating may abort (unless forced), while
// pr-created fires after the fact and cannot. SkipHooks bypasses all three.
func (o *Orchestrator) CreatePR(ctx context.Context, opts CreatePROptions) CreatePRResult {
	log := o.logger.WithWorkflow("create-pr")
	result := CreatePRResult{}

	branch := opts.Branch
	if branch == "" {
		current, err := o.git.CurrentBranch(ctx)
		if err != nil {
			result.fail(errorString(err))
			return result
		}
		branch = current
	}
	result.Branch = branch

	base := opts.Base
	if base == "" {
		def, err := o.git.DefaultBranch(ctx)
		if err != nil {
			result.fail(errorString(err))
			return result
		}
		base = def
	}

	if !opts.SkipHooks && o.hooks.HasHooks(hooks.EventPrePR) {
		diffStat, err := o.git.DiffStat(ctx, base, branch)
		if err != nil {
			result.fail(errorString(err))
			return result
		}
		changed, err := o.git.ChangedFiles(ctx, base, branch)
		if err != nil {
			result.fail(errorString(err))
			return result
		}

		results := o.hooks.Run(ctx, hooks.PrePRPayload{
			Repo:         opts.Repo,
			Branch:       branch,
			DiffStat:     diffStat,
			ChangedFiles: changed,
		}, hooks.RunOptions{})
		result.recordHooks(results)

		if hooks.ShouldAbort(results) && !opts.Force {
			result.AbortedByHook = abortedBy(results)
			result.AbortedAtEvent = hooks.EventPrePR
			result.fail("aborted by hook " + result.AbortedByHook)
			log.Warn("pr creation aborted", "hook", result.AbortedByHook, "event", hooks.EventPrePR)
			return result
		}
	}

	if !opts.SkipHooks && o.hooks.HasHooks(hooks.EventPRCreating) {
		results := o.hooks.Run(ctx, hooks.PRCreatingPayload{
			Repo:   opts.Repo,
			Branch: branch,
			Title:  opts.Title,
			Body:   opts.Body,
		}, hooks.RunOptions{})
		result.recordHooks(results)

		if hooks.ShouldAbort(results) && !opts.Force {
			result.AbortedByHook = abortedBy(results)
			result.AbortedAtEvent = hooks.EventPRCreating
			result.fail("aborted by hook " + result.AbortedByHook)
			log.Warn("pr creation aborted", "hook", result.AbortedByHook, "event", hooks.EventPRCreating)
			return result
		}
	}

	pr, err := o.api.CreatePR(ctx, opts.Repo.FullName, github.CreatePROptions{
		Title: opts.Title,
		Body:  opts.Body,
		Head:  branch,
		Base:  base,
		Draft: opts.Draft,
	})
	if err != nil {
		result.fail(errorString(err))
		return result
	}
	result.PR = pr
	result.Success = true
	log.Info("pull request created", "number", pr.Number, "url", pr.URL)

	if !opts.SkipHooks {
		// The PR already exists; nothing can abort it now.
		result.recordHooks(o.hooks.Run(ctx, hooks.PRCreatedPayload{
			Repo:   opts.Repo,
			Branch: branch,
			PR:     *pr,
		}, hooks.RunOptions{}))
	}

	return result
}
