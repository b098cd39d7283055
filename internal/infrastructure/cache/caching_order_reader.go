package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/tailorbase/backend/internal/domain/integration"
)

// CachingOrderReader decorates an integration.OrderReader with an
// OrderSnapshotCache. Reads go to the cache first; platform responses are
// written back. Cache failures degrade to direct platform reads and are
// never surfaced to the caller.
type CachingOrderReader struct {
	reader integration.OrderReader
	cache  OrderSnapshotCache
	logger *zap.Logger
}

// NewCachingOrderReader wraps reader with the given snapshot cache
func NewCachingOrderReader(reader integration.OrderReader, cache OrderSnapshotCache, logger *zap.Logger) *CachingOrderReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingOrderReader{
		reader: reader,
		cache:  cache,
		logger: logger,
	}
}

// GetOrder returns the cached snapshot when present, otherwise fetches from
// the platform and caches the result
func (r *CachingOrderReader) GetOrder(ctx context.Context, orderID string) (*integration.UpstreamOrder, error) {
	cached, err := r.cache.Get(ctx, orderID)
	if err != nil {
		r.logger.Warn("order snapshot cache read failed, falling back to platform",
			zap.String("order_id", orderID),
			zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	order, err := r.reader.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, order); err != nil {
		r.logger.Warn("failed to cache order snapshot",
			zap.String("order_id", orderID),
			zap.Error(err))
	}
	return order, nil
}

// ListOrders always hits the platform (listings page through live data) and
// seeds the snapshot cache with the returned orders
func (r *CachingOrderReader) ListOrders(ctx context.Context, cursor string, pageSize int) (*integration.OrderPage, error) {
	page, err := r.reader.ListOrders(ctx, cursor, pageSize)
	if err != nil {
		return nil, err
	}

	for i := range page.Orders {
		if err := r.cache.Set(ctx, &page.Orders[i]); err != nil {
			r.logger.Warn("failed to cache order snapshot",
				zap.String("order_id", page.Orders[i].ID),
				zap.Error(err))
		}
	}
	return page, nil
}

// Ensure CachingOrderReader implements integration.OrderReader
var _ integration.OrderReader = (*CachingOrderReader)(nil)
