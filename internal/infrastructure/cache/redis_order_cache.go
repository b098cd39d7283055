package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tailorbase/backend/internal/domain/integration"
)

// defaultSnapshotTTL bounds how long an upstream order snapshot is served
// without re-fetching from the platform
const defaultSnapshotTTL = 5 * time.Minute

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisOrderCache implements OrderSnapshotCache using Redis
// This is suitable for distributed deployments where multiple instances
// need to share the snapshot cache
type RedisOrderCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisOrderCacheOption is a functional option for configuring the cache
type RedisOrderCacheOption func(*RedisOrderCache)

// WithCacheTTL sets the snapshot time-to-live
func WithCacheTTL(ttl time.Duration) RedisOrderCacheOption {
	return func(c *RedisOrderCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisOrderCacheOption {
	return func(c *RedisOrderCache) {
		c.logger = logger
	}
}

// NewRedisOrderCache creates a new Redis-based order snapshot cache
func NewRedisOrderCache(cfg RedisConfig, opts ...RedisOrderCacheOption) (*RedisOrderCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisOrderCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		ttl:        defaultSnapshotTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisOrderCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisOrderCacheWithClient(client *redis.Client, opts ...RedisOrderCacheOption) *RedisOrderCache {
	cache := &RedisOrderCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		ttl:        defaultSnapshotTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// snapshotKey generates the cache key for an order snapshot
func (c *RedisOrderCache) snapshotKey(orderID string) string {
	return "order:snapshot:" + orderID
}

// Get retrieves a cached order snapshot
func (c *RedisOrderCache) Get(ctx context.Context, orderID string) (*integration.UpstreamOrder, error) {
	key := c.snapshotKey(orderID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("cache miss for order snapshot", zap.String("order_id", orderID))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("failed to get order snapshot from cache",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get snapshot from cache: %w", err)
	}

	var order integration.UpstreamOrder
	if err := json.Unmarshal(data, &order); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it
		c.logger.Warn("corrupt order snapshot in cache",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, nil
	}

	return &order, nil
}

// Set stores an order snapshot with the configured TTL
func (c *RedisOrderCache) Set(ctx context.Context, order *integration.UpstreamOrder) error {
	if order == nil || order.ID == "" {
		return nil
	}

	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order snapshot: %w", err)
	}

	if err := c.client.Set(ctx, c.snapshotKey(order.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache order snapshot: %w", err)
	}
	return nil
}

// Invalidate removes an order snapshot from the cache
func (c *RedisOrderCache) Invalidate(ctx context.Context, orderID string) error {
	if err := c.client.Del(ctx, c.snapshotKey(orderID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate order snapshot: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisOrderCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisOrderCache implements OrderSnapshotCache
var _ OrderSnapshotCache = (*RedisOrderCache)(nil)
