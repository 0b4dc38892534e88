package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fatecraft/internal/cascade"
	"fatecraft/internal/viz"
)

func visualizeCmd() *cobra.Command {
	var actionID string
	var actionDesc string
	var inputPath string
	var seed int64
	cmd := &cobra.Command{
		Use:   "visualize [consequence files...]",
		Short: "Expand consequences and render the butterfly-effect diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			if actionID == "" {
				actionID = uuid.NewString()
			}
			return runVisualize(cmd, actionID, actionDesc, inputPath, args, seed)
		},
	}
	cmd.Flags().StringVar(&actionID, "action", "", "Action id the consequences belong to")
	cmd.Flags().StringVar(&actionDesc, "description", "", "What the action did")
	cmd.Flags().StringVar(&inputPath, "input", "", "JSON file containing an array of consequences")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the random source (0 means time-seeded)")
	return cmd
}

func runVisualize(cmd *cobra.Command, actionID, actionDesc, inputPath string, files []string, seed int64) error {
	consequences, err := loadConsequences(actionID, inputPath, files)
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	graph, err := loadGraph()
	if err != nil {
		return err
	}

	engine := cascade.NewEngine(graph, nil, seededRand(seed), nil)
	network, err := engine.Expand(consequences, engineOptions(cfg))
	if err != nil {
		return err
	}

	builder := viz.NewBuilder(engine, nil, nil)
	data, err := builder.Render(actionID, actionDesc, consequences, network)
	if err != nil {
		return err
	}

	return printJSON(cmd, data)
}
