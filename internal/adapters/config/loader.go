// Package config loads and saves archetect's TOML configuration files.
// It implements the ConfigLoader port for reading global and project-local
// configuration.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var _ usecases.ConfigLoader = (*Loader)(nil)

// Loader implements usecases.ConfigLoader for TOML configuration files.
type Loader struct {
	layout usecases.SystemLayout
}

// NewLoader creates a config loader resolving the global config.toml via layout.
func NewLoader(layout usecases.SystemLayout) *Loader {
	return &Loader{layout: layout}
}

// tomlConfig mirrors entities.Configuration's on-disk shape.
type tomlConfig struct {
	Answers   map[string]any `toml:"answers"`
	Switches  []string       `toml:"switches"`
	Offline   *bool          `toml:"offline"`
	Overwrite string         `toml:"overwrite"`
	Catalog   string         `toml:"catalog"`
}

// LoadConfig reads the global config.toml and, if projectRoot contains a
// project-local .archetect.toml, merges it over the global defaults
// (project-local wins on any conflicting key).
func (l *Loader) LoadConfig(ctx context.Context, projectRoot string) (*entities.Configuration, error) {
	cfg := entities.DefaultConfiguration()

	globalPath := filepath.Join(l.layout.ConfigsDir(), "config.toml")
	if _, err := os.Stat(globalPath); err == nil {
		loaded, err := loadFromFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
		cfg.Merge(loaded)
	}

	if projectRoot != "" {
		localPath := filepath.Join(projectRoot, ".archetect.toml")
		if _, err := os.Stat(localPath); err == nil {
			loaded, err := loadFromFile(localPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load project config: %w", err)
			}
			cfg.Merge(loaded)
		}
	}

	return cfg, nil
}

func loadFromFile(path string) (*entities.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tc tomlConfig
	if err := toml.Unmarshal(data, &tc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg := &entities.Configuration{
		Answers:   tc.Answers,
		Switches:  tc.Switches,
		Overwrite: tc.Overwrite,
		Catalog:   tc.Catalog,
	}
	if tc.Offline != nil {
		cfg.Offline = *tc.Offline
	}
	return cfg, nil
}

// SaveConfig persists configuration to the global config.toml.
func (l *Loader) SaveConfig(ctx context.Context, cfg *entities.Configuration) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := os.MkdirAll(l.layout.ConfigsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	offline := cfg.Offline
	tc := tomlConfig{
		Answers:   cfg.Answers,
		Switches:  cfg.Switches,
		Offline:   &offline,
		Overwrite: cfg.Overwrite,
		Catalog:   cfg.Catalog,
	}

	data, err := toml.Marshal(tc)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	configPath := filepath.Join(l.layout.ConfigsDir(), "config.toml")
	header := "# archetect global configuration\n\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
