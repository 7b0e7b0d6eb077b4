package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "polyterm.yaml"
	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/polyterm"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Config holds CLI settings.
type Config struct {
	// Output selects the rendering: text, latex, or json.
	Output string `yaml:"output"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{Output: "text"}
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "latex", "json":
		return nil
	}
	return fmt.Errorf("invalid output format %q (want text, latex, or json)", c.Output)
}

// Merge overlays non-empty fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Output != "" {
		c.Output = other.Output
	}
}

// LoadFromFile reads a config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load resolves configuration with layered precedence:
// defaults, then user config, then a project polyterm.yaml.
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config",
			slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	if projectConfig, err := LoadFromFile(ProjectConfigFile); err == nil {
		l.logger.Debug("Loaded project config", slog.String("path", ProjectConfigFile))
		config.Merge(projectConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load project config",
			slog.String("path", ProjectConfigFile), slog.String("error", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(UserConfigDir, UserConfigFile)
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}
