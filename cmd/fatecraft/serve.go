package main

import (
	"context"

	"github.com/spf13/cobra"

	"fatecraft/internal/cascade"
	"fatecraft/internal/mcp"
	"fatecraft/internal/store"
	"fatecraft/internal/viz"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	graph, err := loadGraph()
	if err != nil {
		return err
	}

	var db store.Store
	if cfg != nil && cfg.Database.Driver != "" {
		db, err = openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)
	}

	engine := cascade.NewEngine(graph, nil, nil, nil)
	pool := viz.NewNodePool()
	builder := viz.NewBuilder(engine, pool, nil)

	server := mcp.NewServer(graph, engine, builder, db, engineOptions(cfg), version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
