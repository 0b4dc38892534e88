package cascade

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"fatecraft/internal/world"
)

// Rand is the injectable uniform [0,1) source used for delay jitter and
// description-template selection. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Options bound the expansion. Zero values are replaced by defaults except
// ProbabilityThreshold, which is only defaulted by DefaultOptions.
type Options struct {
	MaxLevels            int     `json:"max_levels"`
	MaxEffectsPerLevel   int     `json:"max_effects_per_level"`
	ProbabilityThreshold float64 `json:"probability_threshold"`
	IncludeIndirect      bool    `json:"include_indirect"`
}

func DefaultOptions() Options {
	return Options{
		MaxLevels:            3,
		MaxEffectsPerLevel:   4,
		ProbabilityThreshold: 0.3,
		IncludeIndirect:      true,
	}
}

func (o Options) validate() error {
	if o.MaxLevels < 1 {
		return fmt.Errorf("max levels must be at least 1, got %d", o.MaxLevels)
	}
	if o.MaxEffectsPerLevel < 1 {
		return fmt.Errorf("max effects per level must be at least 1, got %d", o.MaxEffectsPerLevel)
	}
	if o.ProbabilityThreshold < 0 || o.ProbabilityThreshold > 1 {
		return fmt.Errorf("probability threshold must be in [0,1], got %v", o.ProbabilityThreshold)
	}
	return nil
}

// Only influence edges stronger than this spawn candidate effects.
const minInfluenceFactor = 0.3

// Candidates below this probability are discarded regardless of threshold.
const minProbability = 0.1

// Engine expands primary consequences level by level across the world-system
// graph. Safe for concurrent use on separate inputs; the graph is immutable.
type Engine struct {
	graph      *world.Graph
	classifier *Classifier
	describer  Describer
	rand       Rand
	logger     *slog.Logger
}

// NewEngine wires an engine. A nil describer falls back to the canned
// templates, a nil rand to a time-seeded source, a nil logger to slog.Default.
func NewEngine(g *world.Graph, d Describer, r Rand, logger *slog.Logger) *Engine {
	if g == nil {
		g = world.Default()
	}
	if d == nil {
		d = NewTemplateDescriber()
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		graph:      g,
		classifier: NewClassifier(),
		describer:  d,
		rand:       r,
		logger:     logger,
	}
}

// frontierNode is the unit of expansion: a consequence or a direct effect
// whose influence is still propagating.
type frontierNode struct {
	id          string
	typ         EffectType
	impact      Impact
	description string
}

// Expand grows a CascadeNetwork from the primary consequences. Malformed
// consequences are clamped, never rejected; an unresolvable system id simply
// expands to nothing. Only option misuse is an error.
func (e *Engine) Expand(consequences []Consequence, opts Options) (network *CascadeNetwork, err error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	network = &CascadeNetwork{
		PrimaryConsequences: make([]Consequence, 0, len(consequences)),
		CascadingEffects:    []CascadingEffect{},
		Relationships:       []Relationship{},
	}

	// A malformed consequence must never abort the rest; an unexpected
	// internal failure degrades to a valid empty network.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("cascade expansion failed, returning empty network", "panic", r)
			network = &CascadeNetwork{
				PrimaryConsequences: []Consequence{},
				CascadingEffects:    []CascadingEffect{},
				Relationships:       []Relationship{},
				Metadata:            NetworkMetadata{ProcessingTimeMs: time.Since(start).Milliseconds()},
			}
			err = nil
		}
	}()

	frontier := make([]frontierNode, 0, len(consequences))
	for _, c := range consequences {
		c = e.normalize(c)
		network.PrimaryConsequences = append(network.PrimaryConsequences, c)
		frontier = append(frontier, frontierNode{
			id:          c.ID,
			typ:         c.Type,
			impact:      c.Impact,
			description: c.Description,
		})
	}

	maxDepth := 0
	for level := 1; level <= opts.MaxLevels && len(frontier) > 0; level++ {
		next := make([]frontierNode, 0, len(frontier)*opts.MaxEffectsPerLevel)
		levelEffects := 0

		for _, parent := range frontier {
			direct := e.expandParent(parent, level, opts)
			for _, eff := range direct {
				network.CascadingEffects = append(network.CascadingEffects, eff)
				network.Relationships = append(network.Relationships, Relationship{
					ParentID: parent.id,
					ChildID:  eff.ID,
					Type:     RelationDirect,
					Strength: eff.Probability,
					DelayMs:  eff.DelayMs,
				})
				levelEffects++

				if opts.IncludeIndirect && level < opts.MaxLevels {
					for _, ind := range e.indirectEffects(eff, level) {
						network.CascadingEffects = append(network.CascadingEffects, ind)
						network.Relationships = append(network.Relationships, Relationship{
							ParentID: eff.ID,
							ChildID:  ind.ID,
							Type:     RelationIndirect,
							Strength: eff.Probability * 0.5,
							DelayMs:  ind.DelayMs,
						})
						levelEffects++
					}
				}

				// Indirect effects never rejoin the frontier.
				next = append(next, frontierNode{
					id:          eff.ID,
					typ:         effectTypeForSystems(eff.Impact.AffectedSystems),
					impact:      eff.Impact,
					description: eff.Description,
				})
			}
		}

		if levelEffects == 0 {
			break
		}
		maxDepth = level
		frontier = next
	}

	network.Metadata = NetworkMetadata{
		TotalEffects:     len(network.CascadingEffects),
		MaxDepth:         maxDepth,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
	e.logger.Debug("cascade expanded",
		"primaries", len(network.PrimaryConsequences),
		"effects", network.Metadata.TotalEffects,
		"depth", network.Metadata.MaxDepth,
	)
	return network, nil
}

// expandParent synthesizes the direct effects of one frontier node at the
// given level: every sufficiently strong edge out of every influenced system
// becomes a candidate, then the survivors are ranked and capped per parent.
func (e *Engine) expandParent(parent frontierNode, level int, opts Options) []CascadingEffect {
	influenced := e.graph.SystemsInfluencedBy(string(parent.typ), parent.impact.AffectedSystems)

	var candidates []CascadingEffect
	for _, sys := range influenced {
		for _, edge := range e.graph.Neighbors(sys.ID) {
			if edge.Factor <= minInfluenceFactor {
				continue
			}

			probability := math.Min(0.8, edge.Factor*0.6) / float64(level)
			if probability < minProbability {
				continue
			}

			delay := int64(2000 + level*1000 + int(e.rand.Float64()*3000))
			magnitude := int(math.Floor(float64(parent.impact.Magnitude) * edge.Factor / (1 + float64(level)*0.5)))

			candidates = append(candidates, CascadingEffect{
				ID:       uuid.NewString(),
				ParentID: parent.id,
				Description: e.describer.Describe(DescribeInput{
					ParentDescription: parent.description,
					SourceSystem:      sys.ID,
					TargetSystem:      edge.Target,
					Pick:              e.rand.Float64(),
				}),
				DelayMs:     delay,
				Probability: clampFloat(probability, 0, 1),
				Impact: Impact{
					Level:             parent.impact.Level.StepDown(),
					AffectedSystems:   []string{edge.Target},
					Magnitude:         clampInt(magnitude, 1, 10),
					Duration:          parent.impact.Duration.StepDown(),
					AffectedLocations: parent.impact.AffectedLocations,
				},
				Level: level,
			})
		}
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if c.Probability >= opts.ProbabilityThreshold {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Probability > kept[j].Probability })
	if len(kept) > opts.MaxEffectsPerLevel {
		kept = kept[:opts.MaxEffectsPerLevel]
	}
	return kept
}

// indirectEffects walks exactly one hop beyond a direct effect's own systems.
// The system graph is cyclic, so this never generalizes into a traversal.
func (e *Engine) indirectEffects(direct CascadingEffect, level int) []CascadingEffect {
	var out []CascadingEffect
	for _, sysID := range direct.Impact.AffectedSystems {
		for _, edge := range e.graph.Neighbors(sysID) {
			if edge.Factor <= minInfluenceFactor {
				continue
			}

			probability := clampFloat(direct.Probability*0.4, 0, 1)
			if probability < minProbability {
				continue
			}

			out = append(out, CascadingEffect{
				ID:       uuid.NewString(),
				ParentID: direct.ID,
				Description: e.describer.Describe(DescribeInput{
					ParentDescription: direct.Description,
					SourceSystem:      sysID,
					TargetSystem:      edge.Target,
					Indirect:          true,
					Pick:              e.rand.Float64(),
				}),
				DelayMs:     direct.DelayMs + int64(e.rand.Float64()*5000),
				Probability: probability,
				Impact: Impact{
					Level:             direct.Impact.Level.StepDown(),
					AffectedSystems:   []string{edge.Target},
					Magnitude:         clampInt(direct.Impact.Magnitude-2, 1, 10),
					Duration:          direct.Impact.Duration.StepDown(),
					AffectedLocations: direct.Impact.AffectedLocations,
				},
				Level: level,
			})
		}
	}
	return out
}

// normalize clamps numeric fields and backfills missing type or impact
// metadata through the classifier. Inputs are never rejected.
func (e *Engine) normalize(c Consequence) Consequence {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Type == "" {
		c.Type = e.classifier.InferType(c.Description)
	}
	if c.Impact.Level == "" && c.Impact.Magnitude == 0 && len(c.Impact.AffectedSystems) == 0 {
		c.Impact = e.classifier.InferImpact(c.Description)
	}
	if c.Impact.Level == "" {
		c.Impact.Level = LevelModerate
	}
	if c.Impact.Duration == "" {
		c.Impact.Duration = DurationShortTerm
	}
	c.Impact.Magnitude = clampInt(c.Impact.Magnitude, 1, 10)
	c.Confidence = clampFloat(c.Confidence, 0, 1)
	return c
}

// effectTypeForSystems maps a generated effect back to an expansion type via
// its first affected system. System ids and effect types share a vocabulary.
func effectTypeForSystems(systems []string) EffectType {
	if len(systems) == 0 {
		return TypeWorldState
	}
	return EffectType(systems[0])
}
