// Package viz projects a cascade network into a renderable diagram:
// positioned nodes, styled connections, a discretized timeline, cross-region
// travel estimates, and emergent-opportunity annotations. Output is a plain
// serializable structure suitable for direct JSON transport; nothing here is
// persisted.
package viz

type NodeKind string

const (
	KindAction      NodeKind = "action"
	KindConsequence NodeKind = "consequence"
	KindEffect      NodeKind = "effect"
)

type Position struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Layer int     `json:"layer"`
}

// Node is the visualization projection of an action, consequence, or effect.
// Request-scoped; may come from a NodePool.
type Node struct {
	ID          string   `json:"id"`
	Kind        NodeKind `json:"kind"`
	Label       string   `json:"label"`
	Position    Position `json:"position"`
	Color       string   `json:"color"`
	Size        float64  `json:"size"`
	Opacity     float64  `json:"opacity"`
	Magnitude   int      `json:"magnitude"`
	Probability float64  `json:"probability"`
	Systems     []string `json:"systems,omitempty"`
	Regions     []string `json:"regions,omitempty"`
}

type ConnectionStyle struct {
	Line  string `json:"line"`
	Color string `json:"color"`
}

// Connection is the projection of one relationship edge. It activates during
// the window [ActiveFromMs, ActiveUntilMs].
type Connection struct {
	ID            string          `json:"id"`
	SourceID      string          `json:"source_id"`
	TargetID      string          `json:"target_id"`
	Type          string          `json:"type"`
	Style         ConnectionStyle `json:"style"`
	Strength      float64         `json:"strength"`
	ActiveFromMs  int64           `json:"active_from_ms"`
	ActiveUntilMs int64           `json:"active_until_ms"`
}

type KeyFrame struct {
	TimeMs            int64    `json:"time"`
	ActiveNodes       []string `json:"active_nodes"`
	ActiveConnections []string `json:"active_connections"`
}

type TemporalProgression struct {
	TotalDurationMs int64      `json:"total_duration"`
	KeyFrames       []KeyFrame `json:"key_frames"`
}

// CrossRegionEffect estimates how long a disturbance takes to travel between
// two named regions touched by one node.
type CrossRegionEffect struct {
	NodeID       string  `json:"node_id"`
	FromRegion   string  `json:"from_region"`
	ToRegion     string  `json:"to_region"`
	Distance     float64 `json:"distance"`
	TravelTimeMs int64   `json:"travel_time_ms"`
}

// EmergentOpportunity annotates a pair of effects whose systems complement
// each other enough to suggest a new gameplay possibility.
type EmergentOpportunity struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	RequiredConditions []string `json:"required_conditions"`
	PotentialOutcomes  []string `json:"potential_outcomes"`
	RelatedNodes       []string `json:"related_nodes"`
}

type Metadata struct {
	TotalNodes       int   `json:"total_nodes"`
	TotalConnections int   `json:"total_connections"`
	MaxCascadeDepth  int   `json:"max_cascade_depth"`
	DroppedEffects   int   `json:"dropped_effects"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// Data is the full renderable projection of one cascade network.
type Data struct {
	RootNode              *Node                 `json:"root_node"`
	Nodes                 []*Node               `json:"nodes"`
	Connections           []*Connection         `json:"connections"`
	TemporalProgression   TemporalProgression   `json:"temporal_progression"`
	CrossRegionEffects    []CrossRegionEffect   `json:"cross_region_effects"`
	EmergentOpportunities []EmergentOpportunity `json:"emergent_opportunities"`
	Metadata              Metadata              `json:"metadata"`
}
