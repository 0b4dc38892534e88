package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new fatecraft project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

const starterWorld = `version: 1

# The influence graph cascading effects travel across. Factors in [0,1];
# only edges above 0.3 propagate.
systems:
  - id: social
    name: Social Fabric
    influences:
      - {target: character, factor: 0.8}
      - {target: relationship, factor: 0.7}
      - {target: economic, factor: 0.6}
      - {target: world_state, factor: 0.4}
  - id: environment
    name: Environment
    influences:
      - {target: exploration, factor: 0.8}
      - {target: world_state, factor: 0.7}
      - {target: economic, factor: 0.5}
      - {target: social, factor: 0.35}
  - id: economic
    name: Economy
    influences:
      - {target: social, factor: 0.7}
      - {target: world_state, factor: 0.6}
      - {target: character, factor: 0.4}
      - {target: relationship, factor: 0.35}
  - id: world_state
    name: World State
    influences:
      - {target: social, factor: 0.6}
      - {target: economic, factor: 0.6}
      - {target: environment, factor: 0.5}
      - {target: combat, factor: 0.4}
  - id: relationship
    name: Relationships
    influences:
      - {target: social, factor: 0.8}
      - {target: character, factor: 0.75}
      - {target: world_state, factor: 0.3}
  - id: character
    name: Characters
    influences:
      - {target: relationship, factor: 0.7}
      - {target: social, factor: 0.6}
      - {target: combat, factor: 0.45}
      - {target: world_state, factor: 0.35}
  - id: combat
    name: Conflict
    influences:
      - {target: character, factor: 0.8}
      - {target: world_state, factor: 0.6}
      - {target: social, factor: 0.5}
      - {target: environment, factor: 0.35}
  - id: exploration
    name: Exploration
    influences:
      - {target: world_state, factor: 0.7}
      - {target: environment, factor: 0.6}
      - {target: economic, factor: 0.45}
      - {target: character, factor: 0.4}
`

func runInit(projectName string) error {
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("%s already exists", configFile)
	}
	if _, err := os.Stat(worldFile); err == nil {
		return fmt.Errorf("%s already exists", worldFile)
	}

	configContents := fmt.Sprintf("project: %s\nversion: 1\n\ndatabase:\n  driver: sqlite\n  dsn: sqlite://fatecraft.db\n\nengine:\n  max_levels: 3\n  max_effects_per_level: 4\n  probability_threshold: 0.3\n  include_indirect: true\n", projectName)
	if err := os.WriteFile(configFile, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}
	if err := os.WriteFile(worldFile, []byte(starterWorld), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", worldFile, err)
	}

	return nil
}
