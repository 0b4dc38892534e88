// Package store persists expanded cascade networks so past expansions can be
// replayed and inspected. Inputs (actions, consequences) belong to upstream
// systems and are never stored here.
package store

import (
	"context"
	"errors"
	"time"

	"fatecraft/internal/cascade"
)

var ErrNotFound = errors.New("cascade not found")

type CascadeRecord struct {
	ID                string
	ActionID          string
	ActionDescription string
	Network           cascade.CascadeNetwork
	CreatedAt         time.Time
}

type CascadeSummary struct {
	ID                string
	ActionID          string
	ActionDescription string
	TotalEffects      int
	MaxDepth          int
	CreatedAt         time.Time
}

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	SaveCascade(ctx context.Context, rec CascadeRecord) error
	GetCascade(ctx context.Context, actionID string) (*CascadeRecord, error)
	ListCascades(ctx context.Context, limit int) ([]CascadeSummary, error)
	DeleteCascade(ctx context.Context, actionID string) error
}
