// Package config provides configuration management for backport-action.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// DefaultTitleTemplate is used when no title template is configured.
// {{base}} and {{originalTitle}} are replaced literally when rendering.
const DefaultTitleTemplate = "[{{base}}] {{originalTitle}}"

// DefaultFailureLabel is added to the original PR when a backport fails.
const DefaultFailureLabel = "backport failed"

// Config represents the backport-action configuration.
type Config struct {
	// Forge type: "github" or "forgejo".
	ForgeType string `yaml:"forge_type"`

	// Forgejo/Gitea instance URL (only for forgejo forge type).
	ForgejoURL string `yaml:"forgejo_url,omitempty"`

	// Host used for cloning over HTTPS.
	Host string `yaml:"host"`

	// Title template for created backport PRs. Supports the {{base}} and
	// {{originalTitle}} placeholders.
	TitleTemplate string `yaml:"title_template"`

	// Labels to add to each created backport PR.
	CopyLabels []string `yaml:"copy_labels"`

	// Label added to the original PR when a backport fails.
	FailureLabel string `yaml:"failure_label"`

	// Committer identity used in the working copy.
	CommitterName  string `yaml:"committer_name"`
	CommitterEmail string `yaml:"committer_email"`

	// Access token. Never read from a file, only from environment or flag.
	Token string `yaml:"-"`

	// DryRun resolves targets and logs the plan without side effects.
	DryRun bool `yaml:"-"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ForgeType:      "github",
		Host:           "github.com",
		TitleTemplate:  DefaultTitleTemplate,
		CopyLabels:     []string{},
		FailureLabel:   DefaultFailureLabel,
		CommitterName:  "backport-action",
		CommitterEmail: "backport-action@users.noreply.github.com",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Merge merges another config into this one. Values from other take precedence if non-empty.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.ForgeType != "" {
		c.ForgeType = other.ForgeType
	}
	if other.ForgejoURL != "" {
		c.ForgejoURL = other.ForgejoURL
	}
	if other.Host != "" {
		c.Host = other.Host
	}
	if other.TitleTemplate != "" {
		c.TitleTemplate = other.TitleTemplate
	}
	if len(other.CopyLabels) > 0 {
		c.CopyLabels = other.CopyLabels
	}
	if other.FailureLabel != "" {
		c.FailureLabel = other.FailureLabel
	}
	if other.CommitterName != "" {
		c.CommitterName = other.CommitterName
	}
	if other.CommitterEmail != "" {
		c.CommitterEmail = other.CommitterEmail
	}
	if other.Token != "" {
		c.Token = other.Token
	}
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "backport-action", "config.yaml")
}

// RepoConfigPath returns the path to the repo-local config file.
func RepoConfigPath() string {
	return ".backport-action.yaml"
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ForgeType != "" && c.ForgeType != "github" && c.ForgeType != "forgejo" {
		return fmt.Errorf("invalid forge_type: %s (must be 'github' or 'forgejo')", c.ForgeType)
	}
	if c.ForgeType == "forgejo" && c.ForgejoURL == "" && os.Getenv("FORGEJO_URL") == "" {
		return fmt.Errorf("forgejo_url is required for forge_type 'forgejo'")
	}
	return nil
}

// SaveToFile saves the configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
