package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	path := writeFile(t, "fatecraft.yaml", `
project: ember-vale
version: 1
database:
  driver: sqlite
  dsn: sqlite://cascades.db
engine:
  max_levels: 4
  probability_threshold: 0.25
  include_indirect: false
`)

	cfg, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Project != "ember-vale" {
		t.Errorf("expected project ember-vale, got %q", cfg.Project)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "sqlite://cascades.db" {
		t.Errorf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Engine.MaxLevels != 4 {
		t.Errorf("expected max_levels 4, got %d", cfg.Engine.MaxLevels)
	}
	if cfg.Engine.ProbabilityThreshold != 0.25 {
		t.Errorf("expected threshold 0.25, got %v", cfg.Engine.ProbabilityThreshold)
	}
	if cfg.Engine.IncludeIndirect == nil || *cfg.Engine.IncludeIndirect {
		t.Errorf("expected include_indirect explicitly false")
	}
}

func TestLoadProjectConfigOmittedEngineFields(t *testing.T) {
	path := writeFile(t, "fatecraft.yaml", `
project: ember-vale
version: 1
`)

	cfg, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Engine.IncludeIndirect != nil {
		t.Errorf("expected include_indirect unset, got %v", *cfg.Engine.IncludeIndirect)
	}
	if cfg.Engine.MaxLevels != 0 {
		t.Errorf("expected zero max_levels, got %d", cfg.Engine.MaxLevels)
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "missing project",
			content: "version: 1\n",
			want:    "project name is required",
		},
		{
			name:    "bad version",
			content: "project: p\nversion: 2\n",
			want:    "unsupported version",
		},
		{
			name:    "bad driver",
			content: "project: p\nversion: 1\ndatabase:\n  driver: oracle\n  dsn: x\n",
			want:    "unsupported database driver",
		},
		{
			name:    "driver without dsn",
			content: "project: p\nversion: 1\ndatabase:\n  driver: sqlite\n",
			want:    "dsn is required",
		},
		{
			name:    "threshold out of range",
			content: "project: p\nversion: 1\nengine:\n  probability_threshold: 1.5\n",
			want:    "probability_threshold",
		},
		{
			name:    "invalid yaml",
			content: "project: [unclosed\n",
			want:    "loading project config",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "fatecraft.yaml", tc.content)
			_, err := LoadProjectConfig(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadProjectConfigMissingFile(t *testing.T) {
	_, err := LoadProjectConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadWorldDefinition(t *testing.T) {
	path := writeFile(t, "world.yaml", `
version: 1
systems:
  - id: social
    name: Social Fabric
    influences:
      - target: economic
        factor: 0.6
  - id: economic
    name: Economy
    influences:
      - target: social
        factor: 0.4
related:
  trade: [economic, social]
`)

	def, err := LoadWorldDefinition(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(def.Systems) != 2 {
		t.Fatalf("expected 2 systems, got %d", len(def.Systems))
	}
	if def.Systems[0].Influences[0].Target != "economic" || def.Systems[0].Influences[0].Factor != 0.6 {
		t.Errorf("unexpected influence: %+v", def.Systems[0].Influences[0])
	}
	if got := def.Related["trade"]; len(got) != 2 {
		t.Errorf("unexpected related table: %#v", def.Related)
	}
}

func TestLoadWorldDefinitionErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "no systems",
			content: "version: 1\nsystems: []\n",
			want:    "at least one system",
		},
		{
			name:    "duplicate id",
			content: "version: 1\nsystems:\n  - id: social\n  - id: Social\n",
			want:    "duplicate system id",
		},
		{
			name:    "blank id",
			content: "version: 1\nsystems:\n  - id: \"  \"\n",
			want:    "id is required",
		},
		{
			name:    "factor out of range",
			content: "version: 1\nsystems:\n  - id: social\n    influences:\n      - target: economic\n        factor: 1.2\n",
			want:    "factor must be in [0,1]",
		},
		{
			name:    "bad version",
			content: "version: 3\nsystems:\n  - id: social\n",
			want:    "unsupported version",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "world.yaml", tc.content)
			_, err := LoadWorldDefinition(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
