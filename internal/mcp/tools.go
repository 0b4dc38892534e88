package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"fatecraft/internal/cascade"
	"fatecraft/internal/store"
	"fatecraft/internal/viz"
)

type ConsequenceInput struct {
	ID          string   `json:"id,omitempty" jsonschema:"consequence id, generated when empty"`
	Type        string   `json:"type,omitempty" jsonschema:"effect type, inferred from the description when empty"`
	Description string   `json:"description" jsonschema:"what immediately happened"`
	Level       string   `json:"level,omitempty" jsonschema:"impact level: minor, moderate, significant, major, critical"`
	Magnitude   int      `json:"magnitude,omitempty" jsonschema:"impact magnitude 1-10"`
	Duration    string   `json:"duration,omitempty" jsonschema:"impact duration: temporary through permanent"`
	Systems     []string `json:"systems,omitempty" jsonschema:"world systems the impact names"`
	Locations   []string `json:"locations,omitempty" jsonschema:"named regions the impact touches"`
	Confidence  float64  `json:"confidence,omitempty" jsonschema:"producer confidence 0-1"`
}

type OptionsInput struct {
	MaxLevels            int      `json:"max_levels,omitempty" jsonschema:"expansion depth bound"`
	MaxEffectsPerLevel   int      `json:"max_effects_per_level,omitempty" jsonschema:"direct fan-out bound per parent"`
	ProbabilityThreshold *float64 `json:"probability_threshold,omitempty" jsonschema:"minimum surviving probability"`
	IncludeIndirect      *bool    `json:"include_indirect,omitempty" jsonschema:"augment with weaker indirect effects"`
}

type ExpandCascadeInput struct {
	ActionID          string             `json:"action_id" jsonschema:"id of the world-altering action"`
	ActionDescription string             `json:"action_description,omitempty" jsonschema:"what the action did"`
	Consequences      []ConsequenceInput `json:"consequences" jsonschema:"immediate consequences to expand"`
	Options           *OptionsInput      `json:"options,omitempty" jsonschema:"expansion option overrides"`
	Save              bool               `json:"save,omitempty" jsonschema:"persist the expanded network to history"`
}

type ExpandCascadeOutput struct {
	Network *cascade.CascadeNetwork `json:"network"`
}

type VisualizeCascadeInput struct {
	ActionID          string             `json:"action_id" jsonschema:"id of the world-altering action"`
	ActionDescription string             `json:"action_description,omitempty" jsonschema:"what the action did"`
	Consequences      []ConsequenceInput `json:"consequences" jsonschema:"immediate consequences to expand and render"`
	Options           *OptionsInput      `json:"options,omitempty" jsonschema:"expansion option overrides"`
}

type VisualizeCascadeOutput struct {
	Visualization *viz.Data `json:"visualization"`
}

type GetWorldSystemsInput struct{}

type WorldSystemOutput struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Influences map[string]float64 `json:"influences"`
}

type GetWorldSystemsOutput struct {
	Systems []WorldSystemOutput `json:"systems"`
}

type GetCascadeInput struct {
	ActionID string `json:"action_id" jsonschema:"action whose stored cascade to fetch"`
}

type GetCascadeOutput struct {
	ActionID          string                  `json:"action_id"`
	ActionDescription string                  `json:"action_description"`
	CreatedAt         string                  `json:"created_at"`
	Network           *cascade.CascadeNetwork `json:"network"`
}

type ListCascadesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum entries, default 50"`
}

type CascadeSummaryOutput struct {
	ActionID          string `json:"action_id"`
	ActionDescription string `json:"action_description"`
	TotalEffects      int    `json:"total_effects"`
	MaxDepth          int    `json:"max_depth"`
	CreatedAt         string `json:"created_at"`
}

type ListCascadesOutput struct {
	Cascades []CascadeSummaryOutput `json:"cascades"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "expand_cascade",
		Description: "Expand an action's immediate consequences into a cascade network",
	}, s.handleExpandCascade)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "visualize_cascade",
		Description: "Expand consequences and render the full butterfly-effect diagram",
	}, s.handleVisualizeCascade)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_world_systems",
		Description: "Return the world-system influence graph",
	}, s.handleGetWorldSystems)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_cascade",
		Description: "Fetch a previously stored cascade by action id",
	}, s.handleGetCascade)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_cascades",
		Description: "List stored cascades, newest first",
	}, s.handleListCascades)
}

func (s *Server) handleExpandCascade(ctx context.Context, req *sdk.CallToolRequest, input ExpandCascadeInput) (*sdk.CallToolResult, ExpandCascadeOutput, error) {
	if input.ActionID == "" {
		return nil, ExpandCascadeOutput{}, fmt.Errorf("action_id is required")
	}

	network, err := s.engine.Expand(consequencesFromInput(input.ActionID, input.Consequences), s.options(input.Options))
	if err != nil {
		return nil, ExpandCascadeOutput{}, err
	}

	if input.Save {
		if s.db == nil {
			return nil, ExpandCascadeOutput{}, fmt.Errorf("no history store configured")
		}
		rec := store.CascadeRecord{
			ID:                uuid.NewString(),
			ActionID:          input.ActionID,
			ActionDescription: input.ActionDescription,
			Network:           *network,
		}
		if err := s.db.SaveCascade(ctx, rec); err != nil {
			return nil, ExpandCascadeOutput{}, err
		}
	}

	return nil, ExpandCascadeOutput{Network: network}, nil
}

func (s *Server) handleVisualizeCascade(ctx context.Context, req *sdk.CallToolRequest, input VisualizeCascadeInput) (*sdk.CallToolResult, VisualizeCascadeOutput, error) {
	if input.ActionID == "" {
		return nil, VisualizeCascadeOutput{}, fmt.Errorf("action_id is required")
	}

	consequences := consequencesFromInput(input.ActionID, input.Consequences)
	network, err := s.engine.Expand(consequences, s.options(input.Options))
	if err != nil {
		return nil, VisualizeCascadeOutput{}, err
	}

	data, err := s.builder.Render(input.ActionID, input.ActionDescription, consequences, network)
	if err != nil {
		return nil, VisualizeCascadeOutput{}, err
	}
	return nil, VisualizeCascadeOutput{Visualization: data}, nil
}

func (s *Server) handleGetWorldSystems(ctx context.Context, req *sdk.CallToolRequest, input GetWorldSystemsInput) (*sdk.CallToolResult, GetWorldSystemsOutput, error) {
	systems := s.graph.Systems()
	out := make([]WorldSystemOutput, 0, len(systems))
	for _, sys := range systems {
		influences := make(map[string]float64)
		for _, edge := range s.graph.Neighbors(sys.ID) {
			influences[edge.Target] = edge.Factor
		}
		out = append(out, WorldSystemOutput{ID: sys.ID, Name: sys.Name, Influences: influences})
	}
	return nil, GetWorldSystemsOutput{Systems: out}, nil
}

func (s *Server) handleGetCascade(ctx context.Context, req *sdk.CallToolRequest, input GetCascadeInput) (*sdk.CallToolResult, GetCascadeOutput, error) {
	if input.ActionID == "" {
		return nil, GetCascadeOutput{}, fmt.Errorf("action_id is required")
	}
	if s.db == nil {
		return nil, GetCascadeOutput{}, fmt.Errorf("no history store configured")
	}

	rec, err := s.db.GetCascade(ctx, input.ActionID)
	if err != nil {
		return nil, GetCascadeOutput{}, err
	}
	return nil, GetCascadeOutput{
		ActionID:          rec.ActionID,
		ActionDescription: rec.ActionDescription,
		CreatedAt:         rec.CreatedAt.Format(time.RFC3339),
		Network:           &rec.Network,
	}, nil
}

func (s *Server) handleListCascades(ctx context.Context, req *sdk.CallToolRequest, input ListCascadesInput) (*sdk.CallToolResult, ListCascadesOutput, error) {
	if s.db == nil {
		return nil, ListCascadesOutput{}, fmt.Errorf("no history store configured")
	}

	summaries, err := s.db.ListCascades(ctx, input.Limit)
	if err != nil {
		return nil, ListCascadesOutput{}, err
	}

	out := make([]CascadeSummaryOutput, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, CascadeSummaryOutput{
			ActionID:          sum.ActionID,
			ActionDescription: sum.ActionDescription,
			TotalEffects:      sum.TotalEffects,
			MaxDepth:          sum.MaxDepth,
			CreatedAt:         sum.CreatedAt.Format(time.RFC3339),
		})
	}
	return nil, ListCascadesOutput{Cascades: out}, nil
}

func (s *Server) options(in *OptionsInput) cascade.Options {
	opts := s.defaults
	if in == nil {
		return opts
	}
	if in.MaxLevels > 0 {
		opts.MaxLevels = in.MaxLevels
	}
	if in.MaxEffectsPerLevel > 0 {
		opts.MaxEffectsPerLevel = in.MaxEffectsPerLevel
	}
	if in.ProbabilityThreshold != nil {
		opts.ProbabilityThreshold = *in.ProbabilityThreshold
	}
	if in.IncludeIndirect != nil {
		opts.IncludeIndirect = *in.IncludeIndirect
	}
	return opts
}

func consequencesFromInput(actionID string, inputs []ConsequenceInput) []cascade.Consequence {
	out := make([]cascade.Consequence, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, cascade.Consequence{
			ID:          in.ID,
			ActionID:    actionID,
			Type:        cascade.EffectType(in.Type),
			Description: in.Description,
			Impact: cascade.Impact{
				Level:             cascade.ImpactLevel(in.Level),
				AffectedSystems:   in.Systems,
				Magnitude:         in.Magnitude,
				Duration:          cascade.Duration(in.Duration),
				AffectedLocations: in.Locations,
			},
			Confidence: in.Confidence,
		})
	}
	return out
}
