// Package mcp exposes the cascade engine as MCP tools over stdio, the surface
// a game-master assistant drives.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"fatecraft/internal/cascade"
	"fatecraft/internal/store"
	"fatecraft/internal/viz"
	"fatecraft/internal/world"
)

type Server struct {
	graph    *world.Graph
	engine   *cascade.Engine
	builder  *viz.Builder
	db       store.Store
	defaults cascade.Options
	mcp      *sdk.Server
}

// NewServer wires the tool surface. db may be nil; history tools then report
// that no store is configured.
func NewServer(graph *world.Graph, engine *cascade.Engine, builder *viz.Builder, db store.Store, defaults cascade.Options, version string) *Server {
	s := &Server{
		graph:    graph,
		engine:   engine,
		builder:  builder,
		db:       db,
		defaults: defaults,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "fatecraft",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
