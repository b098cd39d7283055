package fulfillment

import (
	"context"

	"github.com/google/uuid"
)

// OrderStatusLineRepository defines the interface for ledger line persistence
type OrderStatusLineRepository interface {
	// FindByID finds a line by its opaque ID
	FindByID(ctx context.Context, id uuid.UUID) (*OrderStatusLine, error)

	// FindByOrderID finds all lines for an upstream order, oldest first
	FindByOrderID(ctx context.Context, orderID string) ([]OrderStatusLine, error)

	// FindFirstByOrderID finds the oldest line for an upstream order
	FindFirstByOrderID(ctx context.Context, orderID string) (*OrderStatusLine, error)

	// Save creates or updates a line
	Save(ctx context.Context, line *OrderStatusLine) error

	// SaveAll persists a batch of lines
	SaveAll(ctx context.Context, lines []*OrderStatusLine) error
}

// OrderStatusRollupRepository defines the interface for rollup persistence
type OrderStatusRollupRepository interface {
	// FindByOrderID finds the unique rollup row for an order
	FindByOrderID(ctx context.Context, orderID string) (*OrderStatusRollup, error)

	// Save creates or updates a rollup row
	Save(ctx context.Context, rollup *OrderStatusRollup) error
}

// RollupPolicy decides how a derived phrase is written into the single
// per-order rollup row. The production policy is last-writer-wins with no
// ordering guard; isolating it here lets that decision change without
// touching the transition engine's call sites.
type RollupPolicy interface {
	// Apply records the phrase for the order, creating the rollup row on
	// the first transition and overwriting it afterwards.
	Apply(ctx context.Context, orderID, phrase string) error
}
