package world

import "fatecraft/internal/config"

// FromDefinition builds a graph from a project's world.yaml. The related-type
// table falls back to the built-in one when the definition omits it.
func FromDefinition(def *config.WorldDefinition) *Graph {
	if def == nil {
		return Default()
	}

	systems := make([]System, 0, len(def.Systems))
	edges := make(map[string][]Influence, len(def.Systems))
	for _, sys := range def.Systems {
		systems = append(systems, System{ID: sys.ID, Name: sys.Name})
		outgoing := make([]Influence, 0, len(sys.Influences))
		for _, inf := range sys.Influences {
			outgoing = append(outgoing, Influence{Target: inf.Target, Factor: inf.Factor})
		}
		edges[sys.ID] = outgoing
	}

	related := def.Related
	if related == nil {
		related = defaultRelated()
	}

	return New(systems, edges, related)
}
