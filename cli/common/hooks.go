package common

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/forgeops/backport-action/cli/setup"
	"github.com/forgeops/backport-action/shared/logger"
)

// Before is the global before hook that sets up logging.
func Before(ctx context.Context, c *cli.Command) (context.Context, error) {
	if err := logger.SetupGlobalLogger(ctx, c); err != nil {
		return ctx, err
	}

	log.Debug().Str("version", c.Root().Version).Msg("backport-action starting")

	// Offer to create a config file when running interactively without one.
	if setup.ShouldPromptForConfig() && !logger.IsCI() && c.String("config") == "" {
		if err := setup.PromptForConfigCreation(); err != nil {
			log.Warn().Err(err).Msg("failed to create config")
		}
	}

	return ctx, nil
}
