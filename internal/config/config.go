// Package config loads tool configuration with the usual precedence:
// built-in defaults, then ~/.polyhello/config.yaml, then the project's
// .polyhello/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Display   DisplayConfig   `yaml:"display"`
	Languages []string        `yaml:"languages,omitempty"` // subset filter; empty means all
	LogLevel  string          `yaml:"log_level"`
}

type WorkspaceConfig struct {
	Root string `yaml:"root"`
	Keep bool   `yaml:"keep"`
}

type DisplayConfig struct {
	Animate     bool   `yaml:"animate"`
	RevealDelay string `yaml:"reveal_delay"` // per source line, e.g. "300ms"
}

// ParsedRevealDelay returns the configured per-line reveal delay, falling
// back to the default when unset or malformed.
func (d DisplayConfig) ParsedRevealDelay() time.Duration {
	if d.RevealDelay == "" {
		return 300 * time.Millisecond
	}
	delay, err := time.ParseDuration(d.RevealDelay)
	if err != nil || delay < 0 {
		return 300 * time.Millisecond
	}
	return delay
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if c.Workspace.Root == "" {
		return fmt.Errorf("workspace.root is required")
	}
	if c.Display.RevealDelay != "" {
		if _, err := time.ParseDuration(c.Display.RevealDelay); err != nil {
			return fmt.Errorf("display.reveal_delay: %w", err)
		}
	}
	return nil
}

// Load resolves config from project → user → defaults.
func Load() (*Config, error) {
	cfg := defaults()

	// user-level config
	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".polyhello", "config.yaml")
		if err := mergeFile(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	// project-level config (highest priority)
	projectPath := filepath.Join(".polyhello", "config.yaml")
	if err := mergeFile(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, dst)
}

func defaults() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Root: filepath.Join(".polyhello", "runs"),
		},
		Display: DisplayConfig{
			Animate:     true,
			RevealDelay: "300ms",
		},
		LogLevel: "info",
	}
}
