package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appbilling "github.com/pgnest/backend/internal/application/billing"
)

const reportKeyPrefix = "billing:pending-report:"

// RedisReportCache implements billing.ReportCache using Redis.
// Suitable for distributed deployments where multiple instances share the
// cached reports. Redis failures degrade to cache misses; the aggregator
// recomputes and the error is logged, never surfaced to the caller.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisReportCache creates a Redis-backed report cache and verifies the
// connection before returning.
func NewRedisReportCache(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisReportCacheWithClient(client, ttl, logger), nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisReportCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: reportKeyPrefix,
		ttl:       ttl,
		logger:    logger,
	}
}

// Get returns the cached report for a location, or false on miss
func (c *RedisReportCache) Get(ctx context.Context, locationID uuid.UUID) (*appbilling.PendingPaymentsReport, bool) {
	payload, err := c.client.Get(ctx, c.keyPrefix+locationID.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Report cache read failed",
				zap.String("location_id", locationID.String()),
				zap.Error(err))
		}
		return nil, false
	}

	var report appbilling.PendingPaymentsReport
	if err := json.Unmarshal(payload, &report); err != nil {
		c.logger.Warn("Report cache payload corrupt, treating as miss",
			zap.String("location_id", locationID.String()),
			zap.Error(err))
		return nil, false
	}
	return &report, true
}

// Set stores the report for a location under the configured TTL
func (c *RedisReportCache) Set(ctx context.Context, locationID uuid.UUID, report *appbilling.PendingPaymentsReport) {
	payload, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("Report cache encode failed",
			zap.String("location_id", locationID.String()),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.keyPrefix+locationID.String(), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Report cache write failed",
			zap.String("location_id", locationID.String()),
			zap.Error(err))
	}
}

// Invalidate drops the cached report for a location
func (c *RedisReportCache) Invalidate(ctx context.Context, locationID uuid.UUID) {
	if err := c.client.Del(ctx, c.keyPrefix+locationID.String()).Err(); err != nil {
		c.logger.Warn("Report cache invalidation failed",
			zap.String("location_id", locationID.String()),
			zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// Ensure RedisReportCache implements billing.ReportCache
var _ appbilling.ReportCache = (*RedisReportCache)(nil)
