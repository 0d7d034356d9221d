// Package common provides shared CLI flags and utilities.
package common

import (
	"github.com/urfave/cli/v3"

	"github.com/forgeops/backport-action/shared/logger"
)

// GlobalFlags are flags available to all commands.
var GlobalFlags = append([]cli.Flag{
	&cli.StringFlag{
		Sources: cli.EnvVars("BACKPORT_CONFIG"),
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to config file",
	},
}, logger.GlobalLoggerFlags...)
