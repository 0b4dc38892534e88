// Package world defines the static directed weighted graph of abstract world
// systems that cascading effects propagate across. The graph is fixed at
// startup and safe for concurrent reads.
package world

import (
	"sort"
	"strings"
)

const (
	Social       = "social"
	Environment  = "environment"
	Economic     = "economic"
	WorldState   = "world_state"
	Relationship = "relationship"
	Character    = "character"
	Combat       = "combat"
	Exploration  = "exploration"
)

type System struct {
	ID   string
	Name string
}

// Influence is an outgoing edge: this system pushes on Target with the given
// factor in [0,1].
type Influence struct {
	Target string
	Factor float64
}

type Graph struct {
	systems map[string]System
	edges   map[string][]Influence
	related map[string][]string
}

// New builds a graph from explicit system and edge definitions. Edges whose
// endpoints are unknown are dropped silently; factors are clamped to [0,1].
func New(systems []System, edges map[string][]Influence, related map[string][]string) *Graph {
	g := &Graph{
		systems: make(map[string]System, len(systems)),
		edges:   make(map[string][]Influence, len(edges)),
		related: make(map[string][]string, len(related)),
	}
	for _, s := range systems {
		id := strings.ToLower(strings.TrimSpace(s.ID))
		if id == "" {
			continue
		}
		if s.Name == "" {
			s.Name = id
		}
		s.ID = id
		g.systems[id] = s
	}
	for src, outgoing := range edges {
		src = strings.ToLower(src)
		if _, ok := g.systems[src]; !ok {
			continue
		}
		kept := make([]Influence, 0, len(outgoing))
		for _, e := range outgoing {
			target := strings.ToLower(e.Target)
			if _, ok := g.systems[target]; !ok {
				continue
			}
			kept = append(kept, Influence{Target: target, Factor: clamp01(e.Factor)})
		}
		g.edges[src] = kept
	}
	for typ, ids := range related {
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			id = strings.ToLower(id)
			if _, ok := g.systems[id]; ok {
				kept = append(kept, id)
			}
		}
		g.related[strings.ToLower(typ)] = kept
	}
	return g
}

// Neighbors returns the outgoing influence edges of a system in definition
// order. Unknown ids yield nil.
func (g *Graph) Neighbors(systemID string) []Influence {
	return g.edges[strings.ToLower(systemID)]
}

// System resolves a system by id.
func (g *Graph) System(id string) (System, bool) {
	s, ok := g.systems[strings.ToLower(id)]
	return s, ok
}

// Systems returns all systems sorted by id.
func (g *Graph) Systems() []System {
	out := make([]System, 0, len(g.systems))
	for _, s := range g.systems {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SystemsInfluencedBy returns the union of the systems explicitly named in an
// impact and the systems statically related to the effect type, deduplicated
// and in stable order. Unknown ids and types contribute nothing.
func (g *Graph) SystemsInfluencedBy(effectType string, affectedSystems []string) []System {
	seen := make(map[string]struct{})
	out := make([]System, 0, len(affectedSystems)+2)

	add := func(id string) {
		id = strings.ToLower(id)
		s, ok := g.systems[id]
		if !ok {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, s)
	}

	for _, id := range affectedSystems {
		add(id)
	}
	for _, id := range g.related[strings.ToLower(effectType)] {
		add(id)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
