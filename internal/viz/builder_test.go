package viz

import (
	"math"
	"math/rand"
	"testing"

	"fatecraft/internal/cascade"
	"fatecraft/internal/world"
)

func testBuilder(pool *NodePool) *Builder {
	engine := cascade.NewEngine(world.Default(), nil, rand.New(rand.NewSource(1)), nil)
	return NewBuilder(engine, pool, nil)
}

func emptyNetwork() *cascade.CascadeNetwork {
	return &cascade.CascadeNetwork{
		PrimaryConsequences: []cascade.Consequence{},
		CascadingEffects:    []cascade.CascadingEffect{},
		Relationships:       []cascade.Relationship{},
	}
}

func sampleNetwork() *cascade.CascadeNetwork {
	return &cascade.CascadeNetwork{
		PrimaryConsequences: []cascade.Consequence{
			{
				ID: "c1", ActionID: "act-1", Type: cascade.TypeEconomic,
				Description: "Trade routes collapse",
				Impact: cascade.Impact{
					Level: cascade.LevelSignificant, Magnitude: 7,
					AffectedSystems: []string{"economic"}, Duration: cascade.DurationLongTerm,
				},
				Confidence: 0.9,
			},
			{
				ID: "c2", ActionID: "act-1", Type: cascade.TypeSocial,
				Description: "Crowds gather in the square",
				Impact: cascade.Impact{
					Level: cascade.LevelModerate, Magnitude: 5,
					AffectedSystems: []string{"social"}, Duration: cascade.DurationShortTerm,
				},
				Confidence: 0.8,
			},
		},
		CascadingEffects: []cascade.CascadingEffect{
			{
				ID: "e1", ParentID: "c1", Description: "Prices spike",
				DelayMs: 3000, Probability: 0.5, Level: 1,
				Impact: cascade.Impact{
					Level: cascade.LevelModerate, Magnitude: 4,
					AffectedSystems: []string{"economic"}, Duration: cascade.DurationMidTerm,
				},
			},
			{
				ID: "e2", ParentID: "e1", Description: "Unrest spreads",
				DelayMs: 6000, Probability: 0.2, Level: 1,
				Impact: cascade.Impact{
					Level: cascade.LevelMinor, Magnitude: 2,
					AffectedSystems: []string{"social"}, Duration: cascade.DurationShortTerm,
				},
			},
		},
		Relationships: []cascade.Relationship{
			{ParentID: "c1", ChildID: "e1", Type: cascade.RelationDirect, Strength: 0.5, DelayMs: 3000},
			{ParentID: "e1", ChildID: "e2", Type: cascade.RelationIndirect, Strength: 0.25, DelayMs: 6000},
		},
		Metadata: cascade.NetworkMetadata{TotalEffects: 2, MaxDepth: 1},
	}
}

func TestRenderEmptyNetwork(t *testing.T) {
	b := testBuilder(nil)
	data, err := b.Render("act-1", "The king dies", nil, emptyNetwork())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(data.Nodes) != 1 {
		t.Fatalf("expected only the root node, got %d nodes", len(data.Nodes))
	}
	if data.RootNode == nil || data.RootNode.ID != "act-1" {
		t.Fatalf("unexpected root node: %+v", data.RootNode)
	}
	if data.RootNode.Position.X != 0 || data.RootNode.Position.Y != 0 || data.RootNode.Position.Layer != 0 {
		t.Fatalf("root not at origin layer 0: %+v", data.RootNode.Position)
	}
	if len(data.Connections) != 0 {
		t.Fatalf("expected no connections, got %d", len(data.Connections))
	}
	if data.Metadata.MaxCascadeDepth != 0 {
		t.Fatalf("expected depth 0, got %d", data.Metadata.MaxCascadeDepth)
	}
	if data.TemporalProgression.TotalDurationMs != minTimelineSpanMs {
		t.Fatalf("expected minimum timeline span, got %d", data.TemporalProgression.TotalDurationMs)
	}
}

func TestRenderLayout(t *testing.T) {
	b := testBuilder(nil)
	data, err := b.Render("act-1", "The dam breaks", nil, sampleNetwork())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	nodes := make(map[string]*Node)
	for _, n := range data.Nodes {
		nodes[n.ID] = n
	}

	t.Run("primaries on the action circle", func(t *testing.T) {
		c1 := nodes["c1"]
		if c1 == nil {
			t.Fatalf("missing node c1")
		}
		// First of two primaries sits at angle 0.
		if math.Abs(c1.Position.X-primaryRadius) > 1e-9 || math.Abs(c1.Position.Y) > 1e-9 {
			t.Fatalf("unexpected c1 position: %+v", c1.Position)
		}
		if c1.Position.Layer != 1 {
			t.Fatalf("expected layer 1, got %d", c1.Position.Layer)
		}
	})

	t.Run("effects orbit their parent", func(t *testing.T) {
		e1 := nodes["e1"]
		parent := nodes["c1"]
		if e1 == nil || parent == nil {
			t.Fatalf("missing nodes")
		}
		dx := e1.Position.X - parent.Position.X
		dy := e1.Position.Y - parent.Position.Y
		if math.Abs(math.Hypot(dx, dy)-secondaryRadius) > 1e-9 {
			t.Fatalf("e1 not on the secondary radius: %+v", e1.Position)
		}
		if e1.Position.Layer != 2 {
			t.Fatalf("expected layer 2, got %d", e1.Position.Layer)
		}
	})

	t.Run("effect chains resolve through effects", func(t *testing.T) {
		if nodes["e2"] == nil {
			t.Fatalf("expected e2 placed around e1")
		}
	})

	t.Run("connection styles follow relationship type", func(t *testing.T) {
		var direct, indirect *Connection
		for _, c := range data.Connections {
			switch {
			case c.SourceID == "c1" && c.TargetID == "e1":
				direct = c
			case c.SourceID == "e1" && c.TargetID == "e2":
				indirect = c
			}
		}
		if direct == nil || direct.Style.Line != "solid" {
			t.Fatalf("unexpected direct connection: %+v", direct)
		}
		if indirect == nil || indirect.Style.Line != "dashed" {
			t.Fatalf("unexpected indirect connection: %+v", indirect)
		}
		if direct.ActiveFromMs != 3000 || direct.ActiveUntilMs != 5000 {
			t.Fatalf("unexpected activation window: %+v", direct)
		}
	})

	t.Run("action connects to each primary", func(t *testing.T) {
		count := 0
		for _, c := range data.Connections {
			if c.SourceID == "act-1" {
				count++
			}
		}
		if count != 2 {
			t.Fatalf("expected 2 action connections, got %d", count)
		}
	})

	t.Run("metadata counts", func(t *testing.T) {
		if data.Metadata.TotalNodes != 5 {
			t.Fatalf("expected 5 nodes, got %d", data.Metadata.TotalNodes)
		}
		if data.Metadata.TotalConnections != 4 {
			t.Fatalf("expected 4 connections, got %d", data.Metadata.TotalConnections)
		}
		if data.Metadata.DroppedEffects != 0 {
			t.Fatalf("expected no drops, got %d", data.Metadata.DroppedEffects)
		}
	})
}

func TestRenderDropsUnresolvedParents(t *testing.T) {
	network := sampleNetwork()
	network.CascadingEffects = append(network.CascadingEffects, cascade.CascadingEffect{
		ID: "orphan", ParentID: "ghost", Description: "Nobody knows where this came from",
		Probability: 0.4, Level: 1,
		Impact: cascade.Impact{Level: cascade.LevelMinor, Magnitude: 1, Duration: cascade.DurationTemporary},
	})
	network.Relationships = append(network.Relationships, cascade.Relationship{
		ParentID: "ghost", ChildID: "orphan", Type: cascade.RelationDirect,
	})

	b := testBuilder(nil)
	data, err := b.Render("act-1", "desc", nil, network)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, n := range data.Nodes {
		if n.ID == "orphan" {
			t.Fatalf("orphan effect should have been dropped")
		}
	}
	if data.Metadata.DroppedEffects != 1 {
		t.Fatalf("expected 1 dropped effect, got %d", data.Metadata.DroppedEffects)
	}
	// The dangling edge is skipped too.
	for _, c := range data.Connections {
		if c.TargetID == "orphan" {
			t.Fatalf("dangling connection survived")
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	network := sampleNetwork()
	b := testBuilder(nil)

	first, err := b.Render("act-1", "desc", nil, network)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := b.Render("act-1", "desc", nil, network)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(first.Nodes) != len(second.Nodes) {
		t.Fatalf("node counts differ")
	}
	for i := range first.Nodes {
		got, want := second.Nodes[i], first.Nodes[i]
		if got.ID != want.ID || got.Position != want.Position {
			t.Fatalf("node %d differs: %+v vs %+v", i, got, want)
		}
	}
}

func TestRenderExpandsWhenNetworkOmitted(t *testing.T) {
	b := testBuilder(nil)
	consequences := []cascade.Consequence{{
		ID: "c1", ActionID: "act-1", Type: cascade.TypeRelationship,
		Description: "An oath is broken",
		Impact: cascade.Impact{
			Level: cascade.LevelSignificant, Magnitude: 7,
			AffectedSystems: []string{"relationship"}, Duration: cascade.DurationLongTerm,
		},
	}}

	data, err := b.Render("act-1", "desc", consequences, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(data.Nodes) <= 2 {
		t.Fatalf("expected expansion to produce effect nodes, got %d nodes", len(data.Nodes))
	}
}

func TestRenderWithoutEngineOrNetwork(t *testing.T) {
	b := NewBuilder(nil, nil, nil)
	if _, err := b.Render("act-1", "desc", nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCrossRegionEstimates(t *testing.T) {
	network := emptyNetwork()
	network.PrimaryConsequences = []cascade.Consequence{{
		ID: "c1", ActionID: "act-1", Type: cascade.TypeEnvironment,
		Description: "Wildfire spreads",
		Impact: cascade.Impact{
			Level: cascade.LevelCritical, Magnitude: 9,
			AffectedSystems:   []string{"environment"},
			AffectedLocations: []string{"forest", "village"},
			Duration:          cascade.DurationLongTerm,
		},
	}}

	b := testBuilder(nil)
	data, err := b.Render("act-1", "desc", nil, network)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(data.CrossRegionEffects) != 1 {
		t.Fatalf("expected exactly one cross-region effect, got %d", len(data.CrossRegionEffects))
	}
	cre := data.CrossRegionEffects[0]
	if cre.FromRegion != "forest" || cre.ToRegion != "village" {
		t.Fatalf("unexpected regions: %+v", cre)
	}
	wantDistance := RegionDistance("forest", "village")
	if cre.Distance != wantDistance {
		t.Fatalf("expected distance %v, got %v", wantDistance, cre.Distance)
	}
	if cre.TravelTimeMs != int64(wantDistance*1000) {
		t.Fatalf("expected travel time %v, got %d", wantDistance*1000, cre.TravelTimeMs)
	}
}

func TestCrossRegionUnknownRegionsDefaultToOrigin(t *testing.T) {
	if d := RegionDistance("atlantis", "elsewhere"); d != 0 {
		t.Fatalf("expected unknown regions to coincide at origin, got %v", d)
	}
}

func TestEmergentOpportunities(t *testing.T) {
	network := emptyNetwork()
	network.PrimaryConsequences = []cascade.Consequence{
		{
			ID: "c1", ActionID: "act-1", Type: cascade.TypeEconomic,
			Description: "Merchants flee the capital",
			Impact: cascade.Impact{
				Level: cascade.LevelSignificant, Magnitude: 7,
				AffectedSystems: []string{"economic"}, Duration: cascade.DurationMidTerm,
			},
		},
		{
			ID: "c2", ActionID: "act-1", Type: cascade.TypeSocial,
			Description: "Rumors sweep the markets",
			Impact: cascade.Impact{
				Level: cascade.LevelModerate, Magnitude: 5,
				AffectedSystems: []string{"social"}, Duration: cascade.DurationShortTerm,
			},
		},
	}

	b := testBuilder(nil)
	data, err := b.Render("act-1", "desc", nil, network)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(data.EmergentOpportunities) != 1 {
		t.Fatalf("expected one opportunity, got %d", len(data.EmergentOpportunities))
	}
	opp := data.EmergentOpportunities[0]
	if opp.Title != "Market Social Event" {
		t.Fatalf("unexpected title: %q", opp.Title)
	}
	related := map[string]bool{}
	for _, id := range opp.RelatedNodes {
		related[id] = true
	}
	if !related["c1"] || !related["c2"] {
		t.Fatalf("expected c1 and c2 in related nodes, got %#v", opp.RelatedNodes)
	}
}

func TestTimeline(t *testing.T) {
	t.Run("keyframes cover the span at fixed steps", func(t *testing.T) {
		b := testBuilder(nil)
		data, err := b.Render("act-1", "desc", nil, sampleNetwork())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		frames := data.TemporalProgression.KeyFrames
		if len(frames) == 0 {
			t.Fatalf("expected keyframes")
		}
		for i, f := range frames {
			if f.TimeMs != int64(i)*keyFrameStepMs {
				t.Fatalf("frame %d at %d, want %d", i, f.TimeMs, int64(i)*keyFrameStepMs)
			}
			if len(f.ActiveNodes) != len(data.Nodes) {
				t.Fatalf("frame %d: nodes always active, got %d of %d", i, len(f.ActiveNodes), len(data.Nodes))
			}
		}
	})

	t.Run("connections active only inside their window", func(t *testing.T) {
		b := testBuilder(nil)
		data, err := b.Render("act-1", "desc", nil, sampleNetwork())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		// The c1->e1 window is [3000,5000]: active at t=4000, not at t=6000.
		id := "c1->e1"
		active := map[int64]bool{}
		for _, f := range data.TemporalProgression.KeyFrames {
			for _, cid := range f.ActiveConnections {
				if cid == id {
					active[f.TimeMs] = true
				}
			}
		}
		if !active[4000] {
			t.Fatalf("expected connection active at 4000")
		}
		if active[6000] {
			t.Fatalf("expected connection inactive at 6000")
		}
	})

	t.Run("late connections stretch the span", func(t *testing.T) {
		network := sampleNetwork()
		network.Relationships[1].DelayMs = 20000
		network.CascadingEffects[1].DelayMs = 20000

		b := testBuilder(nil)
		data, err := b.Render("act-1", "desc", nil, network)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if data.TemporalProgression.TotalDurationMs != 22000 {
			t.Fatalf("expected span 22000, got %d", data.TemporalProgression.TotalDurationMs)
		}
	})
}
