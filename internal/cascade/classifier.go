package cascade

import "strings"

// Classifier infers a type and impact for consequences that arrive without
// explicit metadata. It is a keyword heuristic: first match wins, ties break
// by scan order, and there is no correctness guarantee beyond plausibility.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Keyword tables are configuration data, not control flow. Scan order is the
// priority order.
var typeKeywords = []struct {
	Type  EffectType
	Words []string
}{
	{TypeRelationship, []string{"relationship", "alliance", "betray", "trust", "friend", "rival", "marriage", "loyal"}},
	{TypeEnvironment, []string{"forest", "river", "weather", "land", "nature", "pollut", "harvest", "drought", "flood"}},
	{TypeCharacter, []string{"character", "hero", "villain", "npc", "reputation", "skill", "injury", "death of"}},
	{TypeEconomic, []string{"trade", "gold", "market", "price", "merchant", "tax", "wealth", "shortage"}},
	{TypeCombat, []string{"battle", "war", "attack", "fight", "siege", "weapon", "raid", "defend"}},
	{TypeExploration, []string{"discover", "explore", "map", "expedition", "ruin", "territory", "frontier"}},
}

var severityKeywords = []struct {
	Level     ImpactLevel
	Magnitude int
	Words     []string
}{
	{LevelCritical, 9, []string{"catastroph", "devastat", "destroy", "annihilat", "critical"}},
	{LevelMajor, 8, []string{"major", "severe", "massive", "widespread"}},
	{LevelSignificant, 7, []string{"significant", "substantial", "serious", "heavy"}},
	{LevelMinor, 2, []string{"minor", "small", "slight", "trivial", "brief"}},
}

var locationKeywords = []string{"village", "town", "city", "forest", "mountain", "river", "castle", "region", "land"}

var characterKeywords = []string{"king", "queen", "lord", "merchant", "guard", "villager", "hero", "elder", "chief"}

var durationKeywords = []struct {
	Duration Duration
	Words    []string
}{
	{DurationPermanent, []string{"permanent", "forever", "irreversib"}},
	{DurationLongTerm, []string{"lasting", "enduring", "generation"}},
	{DurationTemporary, []string{"momentary", "fleeting", "temporary"}},
}

// InferType scans the text for type keywords in priority order. Defaults to
// world_state when nothing matches.
func (c *Classifier) InferType(text string) EffectType {
	lower := strings.ToLower(text)
	for _, entry := range typeKeywords {
		for _, word := range entry.Words {
			if strings.Contains(lower, word) {
				return entry.Type
			}
		}
	}
	return TypeWorldState
}

// InferImpact derives a full impact from severity, location, and character
// keyword hits. Unmatched text yields a moderate, short-term impact on
// world_state.
func (c *Classifier) InferImpact(text string) Impact {
	lower := strings.ToLower(text)

	impact := Impact{
		Level:           LevelModerate,
		Magnitude:       5,
		Duration:        DurationShortTerm,
		AffectedSystems: []string{string(TypeWorldState)},
	}

scanSeverity:
	for _, entry := range severityKeywords {
		for _, word := range entry.Words {
			if strings.Contains(lower, word) {
				impact.Level = entry.Level
				impact.Magnitude = entry.Magnitude
				break scanSeverity
			}
		}
	}

scanDuration:
	for _, entry := range durationKeywords {
		for _, word := range entry.Words {
			if strings.Contains(lower, word) {
				impact.Duration = entry.Duration
				break scanDuration
			}
		}
	}

	for _, word := range locationKeywords {
		if strings.Contains(lower, word) {
			impact.AffectedSystems = append(impact.AffectedSystems, string(TypeEnvironment))
			impact.AffectedLocations = append(impact.AffectedLocations, word)
		}
	}
	for _, word := range characterKeywords {
		if strings.Contains(lower, word) {
			impact.AffectedSystems = append(impact.AffectedSystems, string(TypeCharacter))
			break
		}
	}

	return impact
}
