// Package setup provides interactive configuration setup.
package setup

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/forgeops/backport-action/pkg/config"
)

// Command is the setup command.
var Command = &cli.Command{
	Name:  "setup",
	Usage: "create a configuration file interactively",
	Action: func(_ context.Context, _ *cli.Command) error {
		return CreateConfigInteractive()
	},
}

// PromptForConfigCreation prompts user to create a config file.
func PromptForConfigCreation() error {
	fmt.Println("No configuration file found.")
	fmt.Println("Without configuration, defaults are used for the title template and labels.")

	var createConfig bool
	err := huh.NewConfirm().
		Title("Would you like to create a configuration file now?").
		Affirmative("Yes").
		Negative("No").
		Value(&createConfig).
		Run()
	if err != nil {
		return err
	}

	if !createConfig {
		log.Warn().Msg("continuing without configuration")
		return nil
	}

	return CreateConfigInteractive()
}

// CreateConfigInteractive creates a config file interactively.
func CreateConfigInteractive() error {
	cfg := config.DefaultConfig()

	// Select forge type.
	var forgeType string
	err := huh.NewSelect[string]().
		Title("Select your forge type:").
		Options(
			huh.NewOption("GitHub", "github"),
			huh.NewOption("Forgejo/Gitea", "forgejo"),
		).
		Value(&forgeType).
		Run()
	if err != nil {
		return err
	}

	cfg.ForgeType = forgeType

	switch forgeType {
	case "forgejo":
		// Query for Forgejo URL.
		var forgejoURL string
		err = huh.NewInput().
			Title("Forgejo instance URL (e.g., https://codeberg.org):").
			Value(&forgejoURL).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("URL is required for Forgejo")
				}
				return nil
			}).
			Run()
		if err != nil {
			return err
		}

		cfg.ForgejoURL = forgejoURL

		fmt.Println("\nNote: Set FORGEJO_TOKEN environment variable:")
		fmt.Println("  export FORGEJO_TOKEN=<your-token>")
		fmt.Println("\nRequired token scopes for Forgejo/Gitea:")
		fmt.Println("  - repository:write (to push branches and open PRs)")
	case "github":
		fmt.Println("\nNote: Set GITHUB_TOKEN environment variable:")
		fmt.Println("  export GITHUB_TOKEN=<your-token>")
		fmt.Println("\nRequired token scopes for GitHub:")
		fmt.Println("  - repo (contents and pull request write access)")
	}

	// Title template for created backport PRs.
	var titleTemplate string
	err = huh.NewInput().
		Title("Title template for backport PRs:").
		Value(&titleTemplate).
		Placeholder(config.DefaultTitleTemplate).
		Run()
	if err != nil {
		return err
	}

	if titleTemplate != "" {
		cfg.TitleTemplate = titleTemplate
	}

	// Failure label.
	var failureLabel string
	err = huh.NewInput().
		Title("Label to add to the original PR when a backport fails:").
		Value(&failureLabel).
		Placeholder(config.DefaultFailureLabel).
		Run()
	if err != nil {
		return err
	}

	if failureLabel != "" {
		cfg.FailureLabel = failureLabel
	}

	// Labels to copy onto created backport PRs.
	var copyLabels string
	err = huh.NewInput().
		Title("Labels to add to created backport PRs (comma-separated, optional):").
		Value(&copyLabels).
		Run()
	if err != nil {
		return err
	}

	if copyLabels != "" {
		for _, label := range strings.Split(copyLabels, ",") {
			if trimmed := strings.TrimSpace(label); trimmed != "" {
				cfg.CopyLabels = append(cfg.CopyLabels, trimmed)
			}
		}
	}

	// Select config file location.
	var configLocation string
	err = huh.NewSelect[string]().
		Title("Where should the config file be saved?").
		Options(
			huh.NewOption("Repository (.backport-action.yaml)", "repo"),
			huh.NewOption("Global (~/.config/backport-action/config.yaml)", "global"),
		).
		Value(&configLocation).
		Run()
	if err != nil {
		return err
	}

	var configPath string
	if configLocation == "global" {
		configPath = config.GlobalConfigPath()
	} else {
		configPath = config.RepoConfigPath()
	}

	if err := cfg.SaveToFile(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to: %s\n", configPath)

	return nil
}

// ShouldPromptForConfig checks if we should prompt user to create config.
func ShouldPromptForConfig() bool {
	// Check if any config file exists.
	globalPath := config.GlobalConfigPath()
	repoPath := config.RepoConfigPath()

	_, errGlobal := os.Stat(globalPath)
	_, errRepo := os.Stat(repoPath)

	// If no config files exist at all, prompt.
	return os.IsNotExist(errGlobal) && os.IsNotExist(errRepo)
}
