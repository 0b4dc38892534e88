package sqlite

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS cascades (
		id                 TEXT PRIMARY KEY,
		action_id          TEXT NOT NULL,
		action_description TEXT DEFAULT '',
		network            TEXT NOT NULL,
		total_effects      INTEGER NOT NULL,
		max_depth          INTEGER NOT NULL,
		created_at         TEXT DEFAULT (datetime('now')),
		CONSTRAINT uq_cascade_action UNIQUE (action_id)
	);

	CREATE INDEX IF NOT EXISTS idx_cascades_action ON cascades (action_id);
	CREATE INDEX IF NOT EXISTS idx_cascades_created ON cascades (created_at);
	`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
