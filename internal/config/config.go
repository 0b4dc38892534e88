package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Engine   EngineConfig   `yaml:"engine"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// EngineConfig overrides the default expansion options. Zero fields keep the
// engine defaults.
type EngineConfig struct {
	MaxLevels            int     `yaml:"max_levels"`
	MaxEffectsPerLevel   int     `yaml:"max_effects_per_level"`
	ProbabilityThreshold float64 `yaml:"probability_threshold"`
	IncludeIndirect      *bool   `yaml:"include_indirect"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	switch cfg.Database.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if cfg.Database.Driver != "" && strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required when a driver is set")
	}
	if cfg.Engine.MaxLevels < 0 {
		return fmt.Errorf("engine max_levels must not be negative")
	}
	if cfg.Engine.ProbabilityThreshold < 0 || cfg.Engine.ProbabilityThreshold > 1 {
		return fmt.Errorf("engine probability_threshold must be in [0,1]")
	}
	return nil
}
