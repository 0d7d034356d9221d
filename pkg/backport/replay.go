package backport

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/forgeops/backport-action/pkg/forge"
	"github.com/forgeops/backport-action/pkg/git"
	"github.com/forgeops/backport-action/pkg/target"
)

// Stage identifies where a backport attempt failed.
type Stage string

// Expected failure stages. Each is recoverable by a human following the
// instructions in the failure comment.
const (
	StageSetup    Stage = "branch setup failed"
	StageReplay   Stage = "cherry-pick failed"
	StagePublish  Stage = "push failed"
	StageCreatePR Stage = "pull request creation failed"
	StageLabel    Stage = "labeling failed"
)

// Failure is an expected, human-recoverable failure of a single target. It
// carries everything needed to render manual recovery instructions without
// re-querying the forge.
type Failure struct {
	Stage   Stage
	Target  target.Target
	Commits []string
	Stdout  string
	Stderr  string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s for %s: %v", f.Stage, f.Target.Base, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// failure classifies an error and captures process streams if present.
func failure(stage Stage, t target.Target, cs *ChangeSet, err error) *Failure {
	f := &Failure{
		Stage:   stage,
		Target:  t,
		Commits: cs.Commits,
		Err:     err,
	}

	var cmdErr *git.CommandError
	if errors.As(err, &cmdErr) {
		f.Stdout = cmdErr.Stdout
		f.Stderr = cmdErr.Stderr
	}

	return f
}

// processTarget replays the change onto one target branch and opens the
// backport PR. All expected failures come back as a *Failure inside the
// Result.
func (s *Service) processTarget(ctx context.Context, t target.Target, cs *ChangeSet) Result {
	log.Info().
		Str("base", t.Base).
		Str("head", t.Head).
		Int("pr", cs.Number).
		Msg("processing backport target")

	// Make the original commits locally reachable even if the source
	// branch was deleted after the merge.
	pullRef := fmt.Sprintf("refs/pull/%d/head", cs.Number)
	if err := s.git.FetchRef(ctx, "origin", pullRef); err != nil {
		return Result{Target: t, Err: failure(StageSetup, t, cs, err)}
	}

	// A missing base or a pre-existing head must surface, never be
	// silently overwritten.
	if err := s.git.Switch(ctx, t.Base); err != nil {
		return Result{Target: t, Err: failure(StageSetup, t, cs, err)}
	}
	if err := s.git.SwitchCreate(ctx, t.Head); err != nil {
		return Result{Target: t, Err: failure(StageSetup, t, cs, err)}
	}

	if err := s.replay(ctx, cs); err != nil {
		if abortErr := s.git.AbortCherryPick(ctx); abortErr != nil {
			log.Warn().Err(abortErr).Msg("failed to abort cherry-pick")
		}
		return Result{Target: t, Err: failure(StageReplay, t, cs, err)}
	}

	if err := s.git.Push(ctx, "origin", t.Head); err != nil {
		return Result{Target: t, Err: failure(StagePublish, t, cs, err)}
	}

	prNumber, err := s.forge.CreatePR(ctx, s.owner, s.repo, forge.CreatePROptions{
		Title: RenderTitle(s.config.TitleTemplate, t.Base, cs.Title),
		Body:  prBody(cs, t),
		Head:  t.Head,
		Base:  t.Base,
	})
	if err != nil {
		return Result{Target: t, Err: failure(StageCreatePR, t, cs, err)}
	}

	if len(s.config.CopyLabels) > 0 {
		if err := s.forge.AddLabels(ctx, s.owner, s.repo, prNumber, s.config.CopyLabels); err != nil {
			return Result{Target: t, Err: failure(StageLabel, t, cs, err)}
		}
	}

	log.Info().
		Int("pr", prNumber).
		Str("base", t.Base).
		Msg("backport PR created")

	return Result{Target: t, PRNumber: prNumber}
}

// replay picks the strategy from the merge commit's parents and applies it.
// Exactly one strategy is attempted; its failure is terminal for the target.
//
// Any probe error is treated the same as a single-parent commit and falls
// back to the commit list, transient lookup failures included. That
// conflation is deliberate and matches the long-standing behavior.
func (s *Service) replay(ctx context.Context, cs *ChangeSet) error {
	parents, err := s.probe(cs.MergeCommit)
	if err == nil && len(parents) >= 2 {
		// True merge commit: the range from its first to its second
		// parent is exactly the set of commits the PR introduced.
		log.Debug().Str("sha", cs.MergeCommit).Msg("replaying merge commit range")
		return s.git.CherryPickRange(ctx, parents[0], parents[1])
	}

	if err != nil {
		log.Debug().Err(err).Str("sha", cs.MergeCommit).Msg("merge commit probe failed, replaying commit list")
	} else {
		log.Debug().Str("sha", cs.MergeCommit).Msg("no merge commit, replaying commit list")
	}

	return s.git.CherryPick(ctx, cs.Commits...)
}
