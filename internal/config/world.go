package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// WorldDefinition is an optional override for the built-in world-system
// graph. Projects tune the influence weights without touching engine code.
type WorldDefinition struct {
	Version int                 `yaml:"version"`
	Systems []SystemDefinition  `yaml:"systems"`
	Related map[string][]string `yaml:"related"`
}

type SystemDefinition struct {
	ID         string                `yaml:"id"`
	Name       string                `yaml:"name"`
	Influences []InfluenceDefinition `yaml:"influences"`
}

type InfluenceDefinition struct {
	Target string  `yaml:"target"`
	Factor float64 `yaml:"factor"`
}

func LoadWorldDefinition(path string) (*WorldDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading world definition: %w", err)
	}

	var def WorldDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("loading world definition: %w", err)
	}

	if err := validateWorldDefinition(&def); err != nil {
		return nil, fmt.Errorf("loading world definition: %w", err)
	}

	return &def, nil
}

func validateWorldDefinition(def *WorldDefinition) error {
	if def.Version != 1 {
		return fmt.Errorf("unsupported version: %d", def.Version)
	}
	if len(def.Systems) == 0 {
		return fmt.Errorf("at least one system is required")
	}

	seen := make(map[string]struct{})
	for i, sys := range def.Systems {
		id := strings.ToLower(strings.TrimSpace(sys.ID))
		if id == "" {
			return fmt.Errorf("system %d id is required", i)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("duplicate system id: %s", sys.ID)
		}
		seen[id] = struct{}{}
		for _, inf := range sys.Influences {
			if inf.Factor < 0 || inf.Factor > 1 {
				return fmt.Errorf("system %s influence factor must be in [0,1], got %v", sys.ID, inf.Factor)
			}
		}
	}
	return nil
}
