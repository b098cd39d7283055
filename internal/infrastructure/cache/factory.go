package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tailorbase/backend/internal/infrastructure/config"
)

// OrderCacheFactory creates order snapshot caches based on configuration
type OrderCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// OrderCacheFactoryOption is a functional option for configuring the factory
type OrderCacheFactoryOption func(*OrderCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) OrderCacheFactoryOption {
	return func(f *OrderCacheFactory) {
		f.logger = logger
	}
}

// WithSnapshotTTL sets the snapshot time-to-live for created caches
func WithSnapshotTTL(ttl time.Duration) OrderCacheFactoryOption {
	return func(f *OrderCacheFactory) {
		if ttl > 0 {
			f.ttl = ttl
		}
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) OrderCacheFactoryOption {
	return func(f *OrderCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewOrderCacheFactory creates a new factory
func NewOrderCacheFactory(cfg config.RedisConfig, opts ...OrderCacheFactoryOption) *OrderCacheFactory {
	f := &OrderCacheFactory{
		redisConfig:           cfg,
		ttl:                   defaultSnapshotTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true, // Default to allowing fallback
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based order snapshot cache
func (f *OrderCacheFactory) CreateRedisCache() (OrderSnapshotCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisOrderCache(redisCfg,
		WithCacheTTL(f.ttl),
		WithCacheLogger(f.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis order cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory order snapshot cache
// This is suitable for single-instance deployments and testing
func (f *OrderCacheFactory) CreateInMemoryCache() OrderSnapshotCache {
	return NewInMemoryOrderCache(
		WithInMemoryTTL(f.ttl),
		WithInMemoryLogger(f.logger),
	)
}

// CreateCache creates an order snapshot cache, trying Redis first and
// falling back to in-memory when Redis is unavailable and fallback is allowed
func (f *OrderCacheFactory) CreateCache() (OrderSnapshotCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis order snapshot cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for order snapshot cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory order snapshot cache. "+
		"Snapshots will not be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
