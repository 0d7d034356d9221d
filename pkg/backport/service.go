// Package backport orchestrates replaying a merged pull request onto its
// requested target branches.
package backport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/forgeops/backport-action/pkg/config"
	"github.com/forgeops/backport-action/pkg/event"
	"github.com/forgeops/backport-action/pkg/forge"
	"github.com/forgeops/backport-action/pkg/git"
	"github.com/forgeops/backport-action/pkg/target"
)

// ChangeSet is the original merged change being backported.
type ChangeSet struct {
	Number      int
	Title       string
	Author      string
	MergeCommit string

	// Commits is the full ordered commit SHA list of the PR, as returned
	// by the forge.
	Commits []string
}

// Result is the outcome of one target.
type Result struct {
	Target   target.Target
	PRNumber int
	Err      error
}

// Service orchestrates backports for one trigger event.
type Service struct {
	forge   forge.Forge
	git     *git.Client
	config  *config.Config
	owner   string
	repo    string
	workdir string

	// probe returns the parent SHAs of a commit in the working copy.
	// Overridable in tests.
	probe func(sha string) ([]string, error)
}

// NewService creates a backport service operating on the given working
// directory. The executor must run git in that same directory.
func NewService(f forge.Forge, exec git.Executor, cfg *config.Config, owner, repo, workdir string) *Service {
	s := &Service{
		forge:   f,
		git:     git.NewClient(exec),
		config:  cfg,
		owner:   owner,
		repo:    repo,
		workdir: workdir,
	}
	s.probe = func(sha string) ([]string, error) {
		repository, err := git.Open(s.workdir)
		if err != nil {
			return nil, err
		}
		return repository.MergeParents(sha)
	}
	return s
}

// Run handles one trigger event end to end: resolve targets, set up the
// working copy once, then replay each target in turn.
//
// Expected git/forge failures on a single target are reported on the
// original PR (comment + failure label) and do not stop the loop. Anything
// not classified as a *Failure is a tooling defect and aborts the run.
func (s *Service) Run(ctx context.Context, ev *event.Event) error {
	if !ev.Merged {
		log.Info().Int("pr", ev.Number).Msg("pull request is not merged, nothing to do")
		return nil
	}

	targets := target.Resolve(ev.Action, ev.Label, ev.Labels, ev.Number)
	if len(targets) == 0 {
		log.Info().Int("pr", ev.Number).Str("action", ev.Action).Msg("no backport targets, nothing to do")
		return nil
	}

	if s.config.DryRun {
		for _, t := range targets {
			log.Info().Str("base", t.Base).Str("head", t.Head).Msg("dry-run: would backport")
		}
		return nil
	}

	commits, err := s.forge.ListPRCommits(ctx, s.owner, s.repo, ev.Number)
	if err != nil {
		return fmt.Errorf("failed to list commits of PR #%d: %w", ev.Number, err)
	}

	changeset := &ChangeSet{
		Number:      ev.Number,
		Title:       ev.Title,
		Author:      ev.Author,
		MergeCommit: ev.MergeCommit,
		Commits:     commits,
	}

	if err := s.setup(ctx); err != nil {
		return err
	}

	// All targets share this one working copy and its checked-out branch is
	// mutated in place, so processing is strictly sequential. Parallelizing
	// would require an isolated clone or worktree per target.
	var results []Result
	for _, t := range targets {
		result := s.processTarget(ctx, t, changeset)
		if result.Err != nil {
			var failure *Failure
			if !errors.As(result.Err, &failure) {
				// Not an expected git/forge failure. Masking it as a
				// "backport failed" comment would hide a tooling bug.
				return result.Err
			}
			if err := s.reportFailure(ctx, ev, failure); err != nil {
				return err
			}
		}
		results = append(results, result)
	}

	logSummary(results, ev.Number)

	return nil
}

// setup performs the one-time working copy setup shared by all targets.
func (s *Service) setup(ctx context.Context) error {
	log.Debug().Str("owner", s.owner).Str("repo", s.repo).Msg("cloning repository")
	if err := s.git.CloneWithToken(ctx, s.config.Host, s.owner, s.repo, s.config.Token); err != nil {
		return fmt.Errorf("failed to clone repository: %w", err)
	}

	if err := s.git.ConfigureUser(ctx, s.config.CommitterName, s.config.CommitterEmail); err != nil {
		return fmt.Errorf("failed to configure commit identity: %w", err)
	}

	return nil
}

// reportFailure posts the diagnostic comment and failure label on the
// original PR. Errors here are not backport failures and abort the run.
func (s *Service) reportFailure(ctx context.Context, ev *event.Event, f *Failure) error {
	log.Error().
		Err(f.Err).
		Str("base", f.Target.Base).
		Str("head", f.Target.Head).
		Msg("backport failed")

	if err := s.forge.CreateComment(ctx, s.owner, s.repo, ev.Number, FailureComment(f)); err != nil {
		return fmt.Errorf("failed to post failure comment: %w", err)
	}

	if err := s.forge.AddLabels(ctx, s.owner, s.repo, ev.Number, []string{s.config.FailureLabel}); err != nil {
		return fmt.Errorf("failed to add failure label: %w", err)
	}

	return nil
}

// logSummary logs the outcome of all targets after the loop.
func logSummary(results []Result, originalPR int) {
	var succeeded, failed int
	var created []string
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		succeeded++
		created = append(created, fmt.Sprintf("#%d", r.PRNumber))
	}

	log.Info().
		Int("pr", originalPR).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Str("created", strings.Join(created, ", ")).
		Msg("backport run finished")
}
