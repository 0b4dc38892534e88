package viz

// opportunityPattern names a complementary pair of world systems and the
// gameplay opening it suggests.
type opportunityPattern struct {
	SystemA            string
	SystemB            string
	Title              string
	Description        string
	RequiredConditions []string
	PotentialOutcomes  []string
}

var opportunityPatterns = []opportunityPattern{
	{
		SystemA:            "economic",
		SystemB:            "social",
		Title:              "Market Social Event",
		Description:        "Economic upheaval and social unrest are feeding each other; a public gathering could redirect both.",
		RequiredConditions: []string{"an open marketplace", "a figure trusted by the crowd"},
		PotentialOutcomes:  []string{"new trade alliances", "a riot averted or sparked"},
	},
	{
		SystemA:            "environment",
		SystemB:            "exploration",
		Title:              "Uncharted Passage",
		Description:        "The changed landscape has opened ground no map records; whoever moves first claims it.",
		RequiredConditions: []string{"a party willing to travel", "passable terrain"},
		PotentialOutcomes:  []string{"a new route between regions", "first claim on untouched resources"},
	},
}

// emergentOpportunities scans every unordered node pair against the pattern
// table. Quadratic, but node counts are bounded by the expansion caps.
func emergentOpportunities(nodes []*Node) []EmergentOpportunity {
	var out []EmergentOpportunity
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			for _, p := range opportunityPatterns {
				if !pairMatches(nodes[i], nodes[j], p) {
					continue
				}
				out = append(out, EmergentOpportunity{
					Title:              p.Title,
					Description:        p.Description,
					RequiredConditions: p.RequiredConditions,
					PotentialOutcomes:  p.PotentialOutcomes,
					RelatedNodes:       []string{nodes[i].ID, nodes[j].ID},
				})
			}
		}
	}
	return out
}

func pairMatches(a, b *Node, p opportunityPattern) bool {
	return (hasSystem(a, p.SystemA) && hasSystem(b, p.SystemB)) ||
		(hasSystem(a, p.SystemB) && hasSystem(b, p.SystemA))
}

func hasSystem(n *Node, system string) bool {
	for _, s := range n.Systems {
		if s == system {
			return true
		}
	}
	return false
}
