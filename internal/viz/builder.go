package viz

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"fatecraft/internal/cascade"
)

const (
	primaryRadius   = 150
	secondaryRadius = 100

	// Each connection stays active for a fixed window after its delay.
	connectionWindowMs = 2000

	// Timeline keyframe spacing and minimum span.
	keyFrameStepMs     = 2000
	minTimelineSpanMs  = 15000
	actionNodeSize     = 24.0
	primaryNodeSize    = 16.0
	effectBaseNodeSize = 6.0
)

// Builder renders CascadeVisualization data from a network. Safe for
// concurrent use on separate inputs; the pool, when shared, synchronizes
// internally.
type Builder struct {
	engine *cascade.Engine
	pool   *NodePool
	logger *slog.Logger
}

// NewBuilder wires a builder. engine may be nil when callers always supply a
// pre-expanded network; pool may be nil to disable pooling.
func NewBuilder(engine *cascade.Engine, pool *NodePool, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{engine: engine, pool: pool, logger: logger}
}

// Render projects a network into renderable data. When network is nil the
// consequences are expanded first with default options. Effects whose parent
// cannot be resolved are dropped and counted, never fatal.
func (b *Builder) Render(actionID, actionDescription string, consequences []cascade.Consequence, network *cascade.CascadeNetwork) (*Data, error) {
	start := time.Now()

	if network == nil {
		if b.engine == nil {
			return nil, fmt.Errorf("no network supplied and no engine configured")
		}
		expanded, err := b.engine.Expand(consequences, cascade.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("expanding consequences: %w", err)
		}
		network = expanded
	}

	root := b.pool.GetNode()
	*root = Node{
		ID:       actionID,
		Kind:     KindAction,
		Label:    actionDescription,
		Position: Position{X: 0, Y: 0, Layer: 0},
		Color:    actionColor,
		Size:     actionNodeSize,
		Opacity:  1,
	}

	nodes := make([]*Node, 0, 1+len(network.PrimaryConsequences)+len(network.CascadingEffects))
	nodes = append(nodes, root)
	index := map[string]*Node{actionID: root}

	// Primary consequences on a circle around the action.
	n := len(network.PrimaryConsequences)
	for i, c := range network.PrimaryConsequences {
		angle := 2 * math.Pi * float64(i) / float64(n)
		node := b.pool.GetNode()
		*node = Node{
			ID:          c.ID,
			Kind:        KindConsequence,
			Label:       c.Description,
			Position:    Position{X: primaryRadius * math.Cos(angle), Y: primaryRadius * math.Sin(angle), Layer: 1},
			Color:       colorForLevel(c.Impact.Level),
			Size:        primaryNodeSize,
			Opacity:     1,
			Magnitude:   c.Impact.Magnitude,
			Probability: c.Confidence,
			Systems:     c.Impact.AffectedSystems,
			Regions:     c.Impact.AffectedLocations,
		}
		nodes = append(nodes, node)
		index[c.ID] = node
	}

	// Cascading effects orbit their resolved parent. Group siblings so they
	// spread evenly.
	siblings := make(map[string]int)
	for _, eff := range network.CascadingEffects {
		siblings[eff.ParentID]++
	}
	placed := make(map[string]int)
	dropped := 0
	for _, eff := range network.CascadingEffects {
		parent, ok := index[eff.ParentID]
		if !ok {
			dropped++
			b.logger.Warn("dropping effect with unresolved parent", "effect", eff.ID, "parent", eff.ParentID)
			continue
		}
		i := placed[eff.ParentID]
		placed[eff.ParentID]++
		angle := 2 * math.Pi * float64(i) / float64(siblings[eff.ParentID])

		node := b.pool.GetNode()
		*node = Node{
			ID:    eff.ID,
			Kind:  KindEffect,
			Label: eff.Description,
			Position: Position{
				X:     parent.Position.X + secondaryRadius*math.Cos(angle),
				Y:     parent.Position.Y + secondaryRadius*math.Sin(angle),
				Layer: 2,
			},
			Color:       colorForLevel(eff.Impact.Level),
			Size:        effectBaseNodeSize + float64(eff.Impact.Magnitude),
			Opacity:     0.4 + 0.6*eff.Probability,
			Magnitude:   eff.Impact.Magnitude,
			Probability: eff.Probability,
			Systems:     eff.Impact.AffectedSystems,
			Regions:     eff.Impact.AffectedLocations,
		}
		nodes = append(nodes, node)
		index[eff.ID] = node
	}

	// One connection per relationship edge whose endpoints survived.
	connections := make([]*Connection, 0, len(network.Relationships))
	for _, rel := range network.Relationships {
		if _, ok := index[rel.ParentID]; !ok {
			continue
		}
		if _, ok := index[rel.ChildID]; !ok {
			continue
		}
		conn := b.pool.GetConnection()
		*conn = Connection{
			ID:            rel.ParentID + "->" + rel.ChildID,
			SourceID:      rel.ParentID,
			TargetID:      rel.ChildID,
			Type:          string(rel.Type),
			Style:         styleForConnection(rel.Type),
			Strength:      rel.Strength,
			ActiveFromMs:  rel.DelayMs,
			ActiveUntilMs: rel.DelayMs + connectionWindowMs,
		}
		connections = append(connections, conn)
	}
	// The action connects to each primary consequence immediately.
	for _, c := range network.PrimaryConsequences {
		conn := b.pool.GetConnection()
		*conn = Connection{
			ID:            actionID + "->" + c.ID,
			SourceID:      actionID,
			TargetID:      c.ID,
			Type:          string(cascade.RelationDirect),
			Style:         styleForConnection(cascade.RelationDirect),
			Strength:      c.Confidence,
			ActiveFromMs:  0,
			ActiveUntilMs: connectionWindowMs,
		}
		connections = append(connections, conn)
	}

	data := &Data{
		RootNode:              root,
		Nodes:                 nodes,
		Connections:           connections,
		TemporalProgression:   buildTimeline(nodes, connections),
		CrossRegionEffects:    crossRegionEffects(nodes),
		EmergentOpportunities: emergentOpportunities(nodes),
		Metadata: Metadata{
			TotalNodes:       len(nodes),
			TotalConnections: len(connections),
			MaxCascadeDepth:  network.Metadata.MaxDepth,
			DroppedEffects:   dropped,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
	}
	return data, nil
}

// Release returns a rendering's nodes and connections to the pool. The data
// must not be used afterwards. No-op without a pool.
func (b *Builder) Release(d *Data) {
	if b.pool == nil || d == nil {
		return
	}
	for _, n := range d.Nodes {
		b.pool.PutNode(n)
	}
	for _, c := range d.Connections {
		b.pool.PutConnection(c)
	}
	d.RootNode = nil
	d.Nodes = nil
	d.Connections = nil
}
