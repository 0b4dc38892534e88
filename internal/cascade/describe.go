package cascade

import "fmt"

// DescribeInput carries everything a description generator may use. Pick is a
// uniform [0,1) draw from the engine's random source so template selection
// stays deterministic under a seeded run.
type DescribeInput struct {
	ParentDescription string
	SourceSystem      string
	TargetSystem      string
	Indirect          bool
	Pick              float64
}

// Describer turns a generated effect into narrative text. Phrasing is a
// presentation detail; the engine never branches on it.
type Describer interface {
	Describe(in DescribeInput) string
}

type templateDescriber struct{}

// NewTemplateDescriber returns the canned-template description generator.
func NewTemplateDescriber() Describer {
	return templateDescriber{}
}

var directTemplates = []string{
	"Pressure on %s spills over into %s",
	"Shifts in %s begin to unsettle %s",
	"The disruption of %s sends ripples through %s",
	"Strain in %s gradually reshapes %s",
}

var indirectTemplates = []string{
	"A faint echo of the turmoil in %s reaches %s",
	"Distant repercussions from %s slowly surface in %s",
	"Secondhand accounts of trouble in %s stir unease across %s",
}

func (templateDescriber) Describe(in DescribeInput) string {
	templates := directTemplates
	if in.Indirect {
		templates = indirectTemplates
	}
	idx := int(in.Pick * float64(len(templates)))
	if idx < 0 || idx >= len(templates) {
		idx = 0
	}
	return fmt.Sprintf(templates[idx], in.SourceSystem, in.TargetSystem)
}
