package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var actionID string
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or show stored cascades",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, actionID, limit)
		},
	}
	cmd.Flags().StringVar(&actionID, "action", "", "Show the full cascade for one action")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to list")
	return cmd
}

func runHistory(cmd *cobra.Command, actionID string, limit int) error {
	ctx := context.Background()

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if actionID != "" {
		rec, err := db.GetCascade(ctx, actionID)
		if err != nil {
			return err
		}
		return printJSON(cmd, rec.Network)
	}

	summaries, err := db.ListCascades(ctx, limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(os.Stdout, "No stored cascades.")
		return nil
	}
	for _, s := range summaries {
		fmt.Fprintf(os.Stdout, "%s  effects=%d depth=%d  %s\n",
			s.ActionID, s.TotalEffects, s.MaxDepth, s.CreatedAt.Format("2006-01-02 15:04"))
		if s.ActionDescription != "" {
			fmt.Fprintf(os.Stdout, "  %s\n", s.ActionDescription)
		}
	}
	return nil
}
