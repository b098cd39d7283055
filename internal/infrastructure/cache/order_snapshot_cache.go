// Package cache provides order snapshot caching in front of the upstream
// commerce platform. Two implementations exist: a Redis-backed cache for
// distributed deployments and an in-memory cache for single-instance
// deployments and tests.
package cache

import (
	"context"

	"github.com/tailorbase/backend/internal/domain/integration"
)

// OrderSnapshotCache stores normalized upstream order snapshots keyed by the
// upstream order ID. Get returns (nil, nil) on a cache miss.
type OrderSnapshotCache interface {
	// Get retrieves a cached snapshot, nil when absent or expired
	Get(ctx context.Context, orderID string) (*integration.UpstreamOrder, error)

	// Set stores a snapshot until the cache TTL elapses
	Set(ctx context.Context, order *integration.UpstreamOrder) error

	// Invalidate removes a snapshot
	Invalidate(ctx context.Context, orderID string) error

	// Close releases cache resources
	Close() error
}
