package main

import (
	"github.com/urfave/cli/v3"

	"github.com/forgeops/backport-action/cli/common"
	"github.com/forgeops/backport-action/cli/run"
	"github.com/forgeops/backport-action/cli/setup"
	"github.com/forgeops/backport-action/shared/version"
)

func newApp() *cli.Command {
	app := &cli.Command{}
	app.Name = "backport-action"
	app.Description = "Backports merged pull requests to release branches based on backport labels"
	app.Version = version.String()
	app.Usage = "create backport PRs for merged changes"
	app.Flags = common.GlobalFlags
	app.Before = common.Before
	app.Suggest = true
	app.DefaultCommand = "run"
	app.Commands = []*cli.Command{
		run.Command,
		setup.Command,
	}

	return app
}
