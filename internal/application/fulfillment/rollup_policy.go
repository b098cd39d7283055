package fulfillment

import (
	"context"
	"errors"

	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/shared"
)

// LastWriterWinsRollup is the production rollup policy: a separate
// find-then-save round trip per transition with no ordering guard, so with
// concurrent transitions on different lines of the same order the rollup
// reflects whichever write lands last. This mirrors the legacy behavior; a
// phase-ordering policy can replace it without touching the engine.
type LastWriterWinsRollup struct {
	rollups fulfillment.OrderStatusRollupRepository
}

// NewLastWriterWinsRollup creates the default rollup policy
func NewLastWriterWinsRollup(rollups fulfillment.OrderStatusRollupRepository) *LastWriterWinsRollup {
	return &LastWriterWinsRollup{rollups: rollups}
}

// Apply creates the rollup row on the first transition ever observed for the
// order and unconditionally overwrites the phrase afterwards.
func (p *LastWriterWinsRollup) Apply(ctx context.Context, orderID, phrase string) error {
	rollup, err := p.rollups.FindByOrderID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		rollup, err = fulfillment.NewOrderStatusRollup(orderID, phrase)
		if err != nil {
			return err
		}
		return p.rollups.Save(ctx, rollup)
	}

	rollup.Overwrite(phrase)
	return p.rollups.Save(ctx, rollup)
}
