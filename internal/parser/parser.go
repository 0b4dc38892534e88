// Package parser reads consequence documents: markdown files with a yaml
// frontmatter header describing an action's immediate outcome, the body being
// the narrative description.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Document struct {
	Frontmatter map[string]any
	Title       string
	ActionID    string
	EffectType  string
	Level       string
	Magnitude   int
	Duration    string
	Systems     []string
	Locations   []string
	Confidence  float64
	Body        string
	SourceFile  string
}

var (
	ErrNoFrontmatter = errors.New("no frontmatter found")
	ErrInvalidYAML   = errors.New("invalid YAML in frontmatter")
	ErrMissingTitle  = errors.New("frontmatter missing required 'title' field")
)

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

// Parse extracts the frontmatter and body. Only title is required; type and
// impact fields are optional and, when absent, left for the engine's
// classifier to infer.
func Parse(content []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(content, "\ufeff\n\r\t ")
	if !bytes.HasPrefix(trimmed, []byte("---\n")) {
		return nil, ErrNoFrontmatter
	}

	rest := trimmed[len("---\n"):]
	end := bytes.Index(rest, []byte("---\n"))
	if end == -1 {
		return nil, ErrNoFrontmatter
	}

	yamlBytes := rest[:end]
	body := strings.TrimSpace(string(rest[end+len("---\n"):]))

	var frontmatter map[string]any
	if err := yaml.Unmarshal(yamlBytes, &frontmatter); err != nil {
		return nil, ErrInvalidYAML
	}

	title, ok := frontmatter["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}

	systems, err := parseStrings(frontmatter["systems"])
	if err != nil {
		return nil, fmt.Errorf("systems: %w", err)
	}
	locations, err := parseStrings(frontmatter["locations"])
	if err != nil {
		return nil, fmt.Errorf("locations: %w", err)
	}

	doc := &Document{
		Frontmatter: frontmatter,
		Title:       title,
		Systems:     systems,
		Locations:   locations,
		Body:        body,
	}
	doc.ActionID, _ = frontmatter["action"].(string)
	doc.EffectType, _ = frontmatter["type"].(string)
	doc.Level, _ = frontmatter["level"].(string)
	doc.Duration, _ = frontmatter["duration"].(string)
	doc.Magnitude = parseInt(frontmatter["magnitude"])
	doc.Confidence = parseFloat(frontmatter["confidence"])
	return doc, nil
}

func parseStrings(value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entries must be strings")
			}
			if strings.TrimSpace(s) == "" {
				continue
			}
			items = append(items, s)
		}
		if len(items) == 0 {
			return nil, nil
		}
		return items, nil
	default:
		return nil, fmt.Errorf("must be string or list of strings")
	}
}

func parseInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func parseFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
