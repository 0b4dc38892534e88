package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fatecraft/internal/cascade"
	"fatecraft/internal/store"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "cascades.db")
	c, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("opening sqlite client: %v", err)
	}
	t.Cleanup(func() { c.Close(ctx) })
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return c
}

func testRecord(actionID string) store.CascadeRecord {
	return store.CascadeRecord{
		ID:                actionID + "-rec",
		ActionID:          actionID,
		ActionDescription: "The harvest fails",
		Network: cascade.CascadeNetwork{
			PrimaryConsequences: []cascade.Consequence{{
				ID: "c1", ActionID: actionID, Type: cascade.TypeEconomic,
				Description: "Grain prices triple",
				Impact: cascade.Impact{
					Level: cascade.LevelSignificant, Magnitude: 7,
					AffectedSystems: []string{"economic"}, Duration: cascade.DurationMidTerm,
				},
			}},
			CascadingEffects: []cascade.CascadingEffect{{
				ID: "e1", ParentID: "c1", Description: "Bread riots",
				DelayMs: 4000, Probability: 0.4, Level: 1,
				Impact: cascade.Impact{
					Level: cascade.LevelModerate, Magnitude: 4,
					AffectedSystems: []string{"social"}, Duration: cascade.DurationShortTerm,
				},
			}},
			Relationships: []cascade.Relationship{{
				ParentID: "c1", ChildID: "e1", Type: cascade.RelationDirect, Strength: 0.4, DelayMs: 4000,
			}},
			Metadata: cascade.NetworkMetadata{TotalEffects: 1, MaxDepth: 1},
		},
	}
}

func TestParseDSN(t *testing.T) {
	cases := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "memory", dsn: "sqlite://:memory:", want: ":memory:"},
		{name: "relative path", dsn: "sqlite://cascades.db", want: "./cascades.db"},
		{name: "dotted relative path", dsn: "sqlite://./data/cascades.db", want: "./data/cascades.db"},
		{name: "absolute path", dsn: "sqlite:///var/lib/cascades.db", want: "/var/lib/cascades.db"},
		{name: "query preserved", dsn: "sqlite://cascades.db?mode=ro", want: "./cascades.db?mode=ro"},
		{name: "escaped path", dsn: "sqlite://my%20fate.db", want: "./my fate.db"},
		{name: "wrong scheme", dsn: "postgres://localhost/db", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDSN(tc.dsn)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSaveAndGetCascade(t *testing.T) {
	ctx := context.Background()
	c := testClient(t)

	rec := testRecord("act-1")
	if err := c.SaveCascade(ctx, rec); err != nil {
		t.Fatalf("saving cascade: %v", err)
	}

	got, err := c.GetCascade(ctx, "act-1")
	if err != nil {
		t.Fatalf("getting cascade: %v", err)
	}
	if got.ID != rec.ID || got.ActionDescription != rec.ActionDescription {
		t.Errorf("unexpected record: %+v", got)
	}
	if len(got.Network.CascadingEffects) != 1 || got.Network.CascadingEffects[0].ID != "e1" {
		t.Errorf("network did not round-trip: %+v", got.Network)
	}
	if got.Network.Relationships[0].Strength != 0.4 {
		t.Errorf("relationship strength lost: %+v", got.Network.Relationships[0])
	}
	if got.CreatedAt.IsZero() {
		t.Errorf("expected a created timestamp")
	}
}

func TestSaveCascadeUpsertsByAction(t *testing.T) {
	ctx := context.Background()
	c := testClient(t)

	if err := c.SaveCascade(ctx, testRecord("act-1")); err != nil {
		t.Fatalf("saving cascade: %v", err)
	}

	updated := testRecord("act-1")
	updated.ID = "act-1-rec-v2"
	updated.ActionDescription = "The harvest fails twice over"
	if err := c.SaveCascade(ctx, updated); err != nil {
		t.Fatalf("saving updated cascade: %v", err)
	}

	got, err := c.GetCascade(ctx, "act-1")
	if err != nil {
		t.Fatalf("getting cascade: %v", err)
	}
	if got.ID != "act-1-rec-v2" || got.ActionDescription != updated.ActionDescription {
		t.Errorf("upsert did not replace the record: %+v", got)
	}

	summaries, err := c.ListCascades(ctx, 10)
	if err != nil {
		t.Fatalf("listing cascades: %v", err)
	}
	if len(summaries) != 1 {
		t.Errorf("expected one row after upsert, got %d", len(summaries))
	}
}

func TestGetCascadeNotFound(t *testing.T) {
	ctx := context.Background()
	c := testClient(t)

	_, err := c.GetCascade(ctx, "absent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCascades(t *testing.T) {
	ctx := context.Background()
	c := testClient(t)

	for _, id := range []string{"act-1", "act-2", "act-3"} {
		if err := c.SaveCascade(ctx, testRecord(id)); err != nil {
			t.Fatalf("saving %s: %v", id, err)
		}
	}

	summaries, err := c.ListCascades(ctx, 0)
	if err != nil {
		t.Fatalf("listing cascades: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	seen := map[string]store.CascadeSummary{}
	for _, s := range summaries {
		seen[s.ActionID] = s
	}
	if s, ok := seen["act-2"]; !ok || s.TotalEffects != 1 || s.MaxDepth != 1 {
		t.Errorf("unexpected summary for act-2: %+v", s)
	}

	limited, err := c.ListCascades(ctx, 2)
	if err != nil {
		t.Fatalf("listing with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 summaries with limit, got %d", len(limited))
	}
}

func TestDeleteCascade(t *testing.T) {
	ctx := context.Background()
	c := testClient(t)

	if err := c.SaveCascade(ctx, testRecord("act-1")); err != nil {
		t.Fatalf("saving cascade: %v", err)
	}
	if err := c.DeleteCascade(ctx, "act-1"); err != nil {
		t.Fatalf("deleting cascade: %v", err)
	}
	if _, err := c.GetCascade(ctx, "act-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := c.DeleteCascade(ctx, "act-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}
