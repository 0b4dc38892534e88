package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fatecraft/internal/store"
)

func (c *Client) SaveCascade(ctx context.Context, rec store.CascadeRecord) error {
	networkJSON, err := json.Marshal(rec.Network)
	if err != nil {
		return fmt.Errorf("marshaling network: %w", err)
	}

	query := `
	INSERT INTO cascades (id, action_id, action_description, network, total_effects, max_depth)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (action_id) DO UPDATE SET
		id = EXCLUDED.id,
		action_description = EXCLUDED.action_description,
		network = EXCLUDED.network,
		total_effects = EXCLUDED.total_effects,
		max_depth = EXCLUDED.max_depth,
		created_at = now()
	`

	_, err = c.pool.Exec(ctx, query,
		rec.ID,
		rec.ActionID,
		rec.ActionDescription,
		networkJSON,
		rec.Network.Metadata.TotalEffects,
		rec.Network.Metadata.MaxDepth,
	)
	if err != nil {
		return fmt.Errorf("saving cascade: %w", err)
	}
	return nil
}

func (c *Client) GetCascade(ctx context.Context, actionID string) (*store.CascadeRecord, error) {
	query := `
	SELECT id, action_id, action_description, network, created_at
	FROM cascades
	WHERE action_id = $1
	`

	var rec store.CascadeRecord
	var networkBytes []byte
	err := c.pool.QueryRow(ctx, query, actionID).Scan(
		&rec.ID,
		&rec.ActionID,
		&rec.ActionDescription,
		&networkBytes,
		&rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting cascade: %w", err)
	}

	if err := json.Unmarshal(networkBytes, &rec.Network); err != nil {
		return nil, fmt.Errorf("unmarshaling network: %w", err)
	}
	return &rec, nil
}

func (c *Client) ListCascades(ctx context.Context, limit int) ([]store.CascadeSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, action_id, action_description, total_effects, max_depth, created_at
	FROM cascades
	ORDER BY created_at DESC
	LIMIT $1
	`

	rows, err := c.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing cascades: %w", err)
	}
	defer rows.Close()

	var out []store.CascadeSummary
	for rows.Next() {
		var s store.CascadeSummary
		if err := rows.Scan(&s.ID, &s.ActionID, &s.ActionDescription, &s.TotalEffects, &s.MaxDepth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning cascade: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing cascades: %w", err)
	}
	return out, nil
}

func (c *Client) DeleteCascade(ctx context.Context, actionID string) error {
	tag, err := c.pool.Exec(ctx, `DELETE FROM cascades WHERE action_id = $1`, actionID)
	if err != nil {
		return fmt.Errorf("deleting cascade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
