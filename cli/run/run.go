// Package run provides the event-driven backport command.
package run

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	cliconfig "github.com/forgeops/backport-action/cli/internal/config"
	"github.com/forgeops/backport-action/pkg/backport"
	"github.com/forgeops/backport-action/pkg/event"
	"github.com/forgeops/backport-action/pkg/forge"
	"github.com/forgeops/backport-action/pkg/git"
)

// Command is the run command, the workflow entry point.
var Command = &cli.Command{
	Name:   "run",
	Usage:  "react to a pull request event and create backport PRs",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Sources:  cli.EnvVars("GITHUB_EVENT_PATH"),
			Name:     "event-path",
			Usage:    "path to the pull_request event payload",
			Required: true,
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("GITHUB_REPOSITORY"),
			Name:    "repository",
			Usage:   "owner/repo, used when the payload lacks repository info",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("BACKPORT_TOKEN"),
			Name:    "token",
			Usage:   "access token used for cloning and API calls",
		},
		&cli.StringSliceFlag{
			Sources: cli.EnvVars("BACKPORT_COPY_LABELS"),
			Name:    "copy-label",
			Usage:   "label to add to each created backport PR (repeatable)",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("BACKPORT_TITLE_TEMPLATE"),
			Name:    "title-template",
			Usage:   "PR title template, supports {{base}} and {{originalTitle}}",
		},
		&cli.StringFlag{
			Sources: cli.EnvVars("BACKPORT_FAILURE_LABEL"),
			Name:    "failure-label",
			Usage:   "label added to the original PR when a backport fails",
		},
		&cli.StringFlag{
			Name:  "workdir",
			Usage: "working directory for the clone (defaults to a temp dir)",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "resolve targets and log the plan without making changes",
		},
	},
}

func run(ctx context.Context, c *cli.Command) error {
	cfg, err := cliconfig.Load(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override file configuration.
	if c.String("token") != "" {
		cfg.Token = c.String("token")
	}
	if c.IsSet("title-template") {
		cfg.TitleTemplate = c.String("title-template")
	}
	if c.IsSet("failure-label") {
		cfg.FailureLabel = c.String("failure-label")
	}
	if labels := c.StringSlice("copy-label"); len(labels) > 0 {
		cfg.CopyLabels = labels
	}
	cfg.DryRun = c.Bool("dry-run")

	ev, err := event.Load(c.String("event-path"))
	if err != nil {
		return err
	}

	owner, repo := ev.Owner, ev.Repo
	if repository := c.String("repository"); repository != "" && (owner == "" || repo == "") {
		parts := strings.SplitN(repository, "/", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid repository %q, want owner/repo", repository)
		}
		owner, repo = parts[0], parts[1]
	}
	if owner == "" || repo == "" {
		return fmt.Errorf("repository not present in event payload, pass --repository")
	}

	log.Debug().
		Str("owner", owner).
		Str("repo", repo).
		Str("action", ev.Action).
		Int("pr", ev.Number).
		Msg("handling pull request event")

	forgeClient, err := forge.NewWithOptions(cfg.ForgeType, cfg.Token, forge.NewOptions{
		ForgejoURL: cfg.ForgejoURL,
	})
	if err != nil {
		return err
	}

	workdir := c.String("workdir")
	if workdir == "" {
		workdir, err = os.MkdirTemp("", "backport-action-")
		if err != nil {
			return fmt.Errorf("failed to create working directory: %w", err)
		}
		defer os.RemoveAll(workdir)
	}

	service := backport.NewService(forgeClient, git.NewCLI(workdir), cfg, owner, repo, workdir)

	return service.Run(ctx, ev)
}
