package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func systemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "systems",
		Short: "Print the world-system influence graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := loadGraph()
			if err != nil {
				return err
			}
			for _, sys := range graph.Systems() {
				fmt.Fprintf(os.Stdout, "%s (%s)\n", sys.ID, sys.Name)
				for _, edge := range graph.Neighbors(sys.ID) {
					fmt.Fprintf(os.Stdout, "  -> %s (%.2f)\n", edge.Target, edge.Factor)
				}
			}
			return nil
		},
	}
}
