package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tailorbase/backend/internal/domain/integration"
)

// defaultCleanupInterval controls how often expired snapshots are swept
const defaultCleanupInterval = 30 * time.Second

// InMemoryOrderCache implements OrderSnapshotCache using in-memory storage.
// Entries do not survive restarts and are not shared across instances; use
// the Redis cache for distributed deployments.
type InMemoryOrderCache struct {
	entries sync.Map // map[string]*snapshotEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// snapshotEntry wraps a cached snapshot with its expiration time
type snapshotEntry struct {
	order     *integration.UpstreamOrder
	expiresAt time.Time
}

func (e *snapshotEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryOrderCacheOption is a functional option for configuring the cache
type InMemoryOrderCacheOption func(*InMemoryOrderCache)

// WithInMemoryTTL sets the snapshot time-to-live
func WithInMemoryTTL(ttl time.Duration) InMemoryOrderCacheOption {
	return func(c *InMemoryOrderCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryOrderCacheOption {
	return func(c *InMemoryOrderCache) {
		c.logger = logger
	}
}

// NewInMemoryOrderCache creates a new in-memory order snapshot cache
func NewInMemoryOrderCache(opts ...InMemoryOrderCacheOption) *InMemoryOrderCache {
	cache := &InMemoryOrderCache{
		ttl:    defaultSnapshotTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a cached order snapshot
func (c *InMemoryOrderCache) Get(_ context.Context, orderID string) (*integration.UpstreamOrder, error) {
	if value, ok := c.entries.Load(orderID); ok {
		entry := value.(*snapshotEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.order, nil
		}
		// Expired, remove from cache
		c.entries.Delete(orderID)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, nil
}

// Set stores an order snapshot with the configured TTL
func (c *InMemoryOrderCache) Set(_ context.Context, order *integration.UpstreamOrder) error {
	if order == nil || order.ID == "" {
		return nil
	}

	c.entries.Store(order.ID, &snapshotEntry{
		order:     order,
		expiresAt: time.Now().Add(c.ttl),
	})
	return nil
}

// Invalidate removes an order snapshot from the cache
func (c *InMemoryOrderCache) Invalidate(_ context.Context, orderID string) error {
	c.entries.Delete(orderID)
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryOrderCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns the hit and miss counters
func (c *InMemoryOrderCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// cleanupExpired periodically removes expired entries
func (c *InMemoryOrderCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			removed := 0
			c.entries.Range(func(key, value any) bool {
				if value.(*snapshotEntry).isExpired() {
					c.entries.Delete(key)
					removed++
				}
				return true
			})
			if removed > 0 {
				c.logger.Debug("removed expired order snapshots", zap.Int("count", removed))
			}
		}
	}
}

// Ensure InMemoryOrderCache implements OrderSnapshotCache
var _ OrderSnapshotCache = (*InMemoryOrderCache)(nil)
