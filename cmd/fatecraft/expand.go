package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fatecraft/internal/cascade"
	"fatecraft/internal/parser"
	"fatecraft/internal/store"
)

func expandCmd() *cobra.Command {
	var actionID string
	var actionDesc string
	var inputPath string
	var seed int64
	var save bool
	cmd := &cobra.Command{
		Use:   "expand [consequence files...]",
		Short: "Expand consequences into a cascade network",
		Long:  "Reads consequences from frontmatter documents or a JSON file and prints the expanded cascade network as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if actionID == "" {
				actionID = uuid.NewString()
			}
			return runExpand(cmd, actionID, actionDesc, inputPath, args, seed, save)
		},
	}
	cmd.Flags().StringVar(&actionID, "action", "", "Action id the consequences belong to")
	cmd.Flags().StringVar(&actionDesc, "description", "", "What the action did")
	cmd.Flags().StringVar(&inputPath, "input", "", "JSON file containing an array of consequences")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the random source (0 means time-seeded)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the expanded network to the history store")
	return cmd
}

func runExpand(cmd *cobra.Command, actionID, actionDesc, inputPath string, files []string, seed int64, save bool) error {
	ctx := context.Background()

	consequences, err := loadConsequences(actionID, inputPath, files)
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	graph, err := loadGraph()
	if err != nil {
		return err
	}

	engine := cascade.NewEngine(graph, nil, seededRand(seed), nil)
	network, err := engine.Expand(consequences, engineOptions(cfg))
	if err != nil {
		return err
	}

	if save {
		db, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)
		rec := store.CascadeRecord{
			ID:                uuid.NewString(),
			ActionID:          actionID,
			ActionDescription: actionDesc,
			Network:           *network,
		}
		if err := db.SaveCascade(ctx, rec); err != nil {
			return err
		}
	}

	return printJSON(cmd, network)
}

// loadConsequences merges a JSON array file and any frontmatter documents.
func loadConsequences(actionID, inputPath string, files []string) ([]cascade.Consequence, error) {
	var out []cascade.Consequence

	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", inputPath, err)
		}
		var parsed []cascade.Consequence
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", inputPath, err)
		}
		for i := range parsed {
			if parsed[i].ActionID == "" {
				parsed[i].ActionID = actionID
			}
		}
		out = append(out, parsed...)
	}

	for _, path := range files {
		doc, err := parser.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		out = append(out, consequenceFromDoc(actionID, doc))
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no consequences supplied; pass --input or consequence files")
	}
	return out, nil
}

func consequenceFromDoc(actionID string, doc *parser.Document) cascade.Consequence {
	description := doc.Body
	if description == "" {
		description = doc.Title
	}
	if doc.ActionID != "" {
		actionID = doc.ActionID
	}
	return cascade.Consequence{
		ActionID:    actionID,
		Type:        cascade.EffectType(doc.EffectType),
		Description: description,
		Impact: cascade.Impact{
			Level:             cascade.ImpactLevel(doc.Level),
			AffectedSystems:   doc.Systems,
			Magnitude:         doc.Magnitude,
			Duration:          cascade.Duration(doc.Duration),
			AffectedLocations: doc.Locations,
		},
		Confidence: doc.Confidence,
	}
}

func seededRand(seed int64) cascade.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
