// Package cascade expands the immediate consequences of a world-altering
// action into a bounded tree of secondary and tertiary effects across the
// world-system graph.
package cascade

type EffectType string

const (
	TypeSocial       EffectType = "social"
	TypeEnvironment  EffectType = "environment"
	TypeEconomic     EffectType = "economic"
	TypeWorldState   EffectType = "world_state"
	TypeRelationship EffectType = "relationship"
	TypeCharacter    EffectType = "character"
	TypeCombat       EffectType = "combat"
	TypeExploration  EffectType = "exploration"
)

type ImpactLevel string

const (
	LevelMinor       ImpactLevel = "minor"
	LevelModerate    ImpactLevel = "moderate"
	LevelSignificant ImpactLevel = "significant"
	LevelMajor       ImpactLevel = "major"
	LevelCritical    ImpactLevel = "critical"
)

// impactRank orders levels from weakest to strongest for step-down decay.
var impactRank = []ImpactLevel{LevelMinor, LevelModerate, LevelSignificant, LevelMajor, LevelCritical}

// StepDown returns the next weaker level, floored at minor.
func (l ImpactLevel) StepDown() ImpactLevel {
	for i, level := range impactRank {
		if level == l {
			if i == 0 {
				return l
			}
			return impactRank[i-1]
		}
	}
	return LevelMinor
}

type Duration string

const (
	DurationTemporary Duration = "temporary"
	DurationShortTerm Duration = "short_term"
	DurationMidTerm   Duration = "mid_term"
	DurationLongTerm  Duration = "long_term"
	DurationPermanent Duration = "permanent"
)

var durationRank = []Duration{DurationTemporary, DurationShortTerm, DurationMidTerm, DurationLongTerm, DurationPermanent}

// StepDown returns the next shorter duration, floored at temporary.
func (d Duration) StepDown() Duration {
	for i, dur := range durationRank {
		if dur == d {
			if i == 0 {
				return d
			}
			return durationRank[i-1]
		}
	}
	return DurationTemporary
}

type Impact struct {
	Level             ImpactLevel `json:"level"`
	AffectedSystems   []string    `json:"affected_systems"`
	Magnitude         int         `json:"magnitude"`
	Duration          Duration    `json:"duration"`
	AffectedLocations []string    `json:"affected_locations,omitempty"`
}

// Consequence is an immediate outcome of an action, supplied by an upstream
// producer and read-only here.
type Consequence struct {
	ID          string     `json:"id"`
	ActionID    string     `json:"action_id"`
	Type        EffectType `json:"type"`
	Description string     `json:"description"`
	Impact      Impact     `json:"impact"`
	Confidence  float64    `json:"confidence"`
}

// CascadingEffect is a generated downstream effect. Immutable once created.
type CascadingEffect struct {
	ID          string  `json:"id"`
	ParentID    string  `json:"parent_id"`
	Description string  `json:"description"`
	DelayMs     int64   `json:"delay_ms"`
	Probability float64 `json:"probability"`
	Impact      Impact  `json:"impact"`
	Level       int     `json:"level"`
}

type RelationType string

const (
	RelationDirect     RelationType = "direct"
	RelationIndirect   RelationType = "indirect"
	RelationAmplifying RelationType = "amplifying"
	RelationMitigating RelationType = "mitigating"
)

// Relationship links a parent consequence or effect to a child effect.
type Relationship struct {
	ParentID string       `json:"parent_id"`
	ChildID  string       `json:"child_id"`
	Type     RelationType `json:"type"`
	Strength float64      `json:"strength"`
	DelayMs  int64        `json:"delay_ms"`
}

type NetworkMetadata struct {
	TotalEffects     int   `json:"total_effects"`
	MaxDepth         int   `json:"max_depth"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// CascadeNetwork is the full expansion result: the primary consequences plus
// every generated effect and the edges relating them. Read-only after
// construction.
type CascadeNetwork struct {
	PrimaryConsequences []Consequence     `json:"primary_consequences"`
	CascadingEffects    []CascadingEffect `json:"cascading_effects"`
	Relationships       []Relationship    `json:"relationships"`
	Metadata            NetworkMetadata   `json:"metadata"`
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
