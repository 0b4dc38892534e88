package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fatecraft/internal/store"
)

func (c *Client) SaveCascade(ctx context.Context, rec store.CascadeRecord) error {
	networkJSON, err := json.Marshal(rec.Network)
	if err != nil {
		return fmt.Errorf("marshaling network: %w", err)
	}

	query := `
	INSERT INTO cascades (id, action_id, action_description, network, total_effects, max_depth, created_at)
	VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
	ON CONFLICT (action_id) DO UPDATE SET
		id = excluded.id,
		action_description = excluded.action_description,
		network = excluded.network,
		total_effects = excluded.total_effects,
		max_depth = excluded.max_depth,
		created_at = datetime('now')
	`

	_, err = c.db.ExecContext(ctx, query,
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
	WHERE action_id = ?
	`

	var rec store.CascadeRecord
	var networkBytes []byte
	var createdAt string
	err := c.db.QueryRowContext(ctx, query, actionID).Scan(
		&rec.ID,
		&rec.ActionID,
		&rec.ActionDescription,
		&networkBytes,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting cascade: %w", err)
	}

	if err := json.Unmarshal(networkBytes, &rec.Network); err != nil {
		return nil, fmt.Errorf("unmarshaling network: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)
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
	LIMIT ?
	`

	rows, err := c.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing cascades: %w", err)
	}
	defer rows.Close()

	var out []store.CascadeSummary
	for rows.Next() {
		var s store.CascadeSummary
		var createdAt string
		if err := rows.Scan(&s.ID, &s.ActionID, &s.ActionDescription, &s.TotalEffects, &s.MaxDepth, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning cascade: %w", err)
		}
		s.CreatedAt = parseTime(createdAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing cascades: %w", err)
	}
	return out, nil
}

func (c *Client) DeleteCascade(ctx context.Context, actionID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM cascades WHERE action_id = ?`, actionID)
	if err != nil {
		return fmt.Errorf("deleting cascade: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting cascade: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
