package world

// Default returns the built-in world-system graph. The weights encode how
// strongly a disturbance in one system tends to spill into another; the graph
// is cyclic on purpose (social pressure shapes characters, characters reshape
// social ties).
func Default() *Graph {
	systems := []System{
		{ID: Social, Name: "Social Fabric"},
		{ID: Environment, Name: "Environment"},
		{ID: Economic, Name: "Economy"},
		{ID: WorldState, Name: "World State"},
		{ID: Relationship, Name: "Relationships"},
		{ID: Character, Name: "Characters"},
		{ID: Combat, Name: "Conflict"},
		{ID: Exploration, Name: "Exploration"},
	}

	edges := map[string][]Influence{
		Social: {
			{Target: Character, Factor: 0.8},
			{Target: Relationship, Factor: 0.7},
			{Target: Economic, Factor: 0.6},
			{Target: WorldState, Factor: 0.4},
		},
		Environment: {
			{Target: Exploration, Factor: 0.8},
			{Target: WorldState, Factor: 0.7},
			{Target: Economic, Factor: 0.5},
			{Target: Social, Factor: 0.35},
		},
		Economic: {
			{Target: Social, Factor: 0.7},
			{Target: WorldState, Factor: 0.6},
			{Target: Character, Factor: 0.4},
			{Target: Relationship, Factor: 0.35},
		},
		WorldState: {
			{Target: Social, Factor: 0.6},
			{Target: Economic, Factor: 0.6},
			{Target: Environment, Factor: 0.5},
			{Target: Combat, Factor: 0.4},
		},
		Relationship: {
			{Target: Social, Factor: 0.8},
			{Target: Character, Factor: 0.75},
			{Target: WorldState, Factor: 0.3},
		},
		Character: {
			{Target: Relationship, Factor: 0.7},
			{Target: Social, Factor: 0.6},
			{Target: Combat, Factor: 0.45},
			{Target: WorldState, Factor: 0.35},
		},
		Combat: {
			{Target: Character, Factor: 0.8},
			{Target: WorldState, Factor: 0.6},
			{Target: Social, Factor: 0.5},
			{Target: Environment, Factor: 0.35},
		},
		Exploration: {
			{Target: WorldState, Factor: 0.7},
			{Target: Environment, Factor: 0.6},
			{Target: Economic, Factor: 0.45},
			{Target: Character, Factor: 0.4},
		},
	}

	return New(systems, edges, defaultRelated())
}

// defaultRelated is the static type-to-related-systems table: the systems an
// effect of a given type always touches, beyond those its impact names.
func defaultRelated() map[string][]string {
	return map[string][]string{
		Social:       {Social, Relationship},
		Environment:  {Environment, WorldState},
		Economic:     {Economic, WorldState},
		WorldState:   {WorldState},
		Relationship: {Relationship, Social},
		Character:    {Character, Social},
		Combat:       {Combat, Character},
		Exploration:  {Exploration, Environment},
	}
}
