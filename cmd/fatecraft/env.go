package main

import (
	"fmt"
	"os"

	"fatecraft/internal/cascade"
	"fatecraft/internal/config"
	"fatecraft/internal/world"
)

const (
	configFile = "fatecraft.yaml"
	worldFile  = "world.yaml"
)

// loadGraph returns the project's world-system graph: world.yaml when
// present, the built-in graph otherwise.
func loadGraph() (*world.Graph, error) {
	if _, err := os.Stat(worldFile); err != nil {
		return world.Default(), nil
	}
	def, err := config.LoadWorldDefinition(worldFile)
	if err != nil {
		return nil, err
	}
	return world.FromDefinition(def), nil
}

// engineOptions merges the project config over the engine defaults.
func engineOptions(cfg *config.ProjectConfig) cascade.Options {
	opts := cascade.DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Engine.MaxLevels > 0 {
		opts.MaxLevels = cfg.Engine.MaxLevels
	}
	if cfg.Engine.MaxEffectsPerLevel > 0 {
		opts.MaxEffectsPerLevel = cfg.Engine.MaxEffectsPerLevel
	}
	if cfg.Engine.ProbabilityThreshold > 0 {
		opts.ProbabilityThreshold = cfg.Engine.ProbabilityThreshold
	}
	if cfg.Engine.IncludeIndirect != nil {
		opts.IncludeIndirect = *cfg.Engine.IncludeIndirect
	}
	return opts
}

// loadProjectConfig reads fatecraft.yaml, tolerating its absence so the
// engine commands work in bare directories.
func loadProjectConfig() (*config.ProjectConfig, error) {
	if _, err := os.Stat(configFile); err != nil {
		return nil, nil
	}
	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configFile, err)
	}
	return cfg, nil
}
