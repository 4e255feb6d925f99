package repository

import (
	"context"
	"encoding/json"
	"time"

	"oabplanner/backend/models"

	"github.com/redis/go-redis/v9"
)

const statsCacheKeyPrefix = "dashboard:stats:"

// StatsCache holds computed dashboard stats between changes.
type StatsCache interface {
	Get(ctx context.Context, userID string) (*models.DashboardStats, error)
	Set(ctx context.Context, userID string, stats *models.DashboardStats) error
	Invalidate(ctx context.Context, userID string) error
}

// NewStatsCache returns a Redis cache, or a no-op cache when client is nil.
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	if client == nil {
		return NoopStatsCache{}
	}
	return &RedisStatsCache{client: client, ttl: ttl}
}

type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Get returns the cached stats, or (nil, nil) on a miss.
func (c *RedisStatsCache) Get(ctx context.Context, userID string) (*models.DashboardStats, error) {
	data, err := c.client.Get(ctx, statsCacheKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats models.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, userID string, stats *models.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsCacheKeyPrefix+userID, data, c.ttl).Err()
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, statsCacheKeyPrefix+userID).Err()
}

type NoopStatsCache struct{}

func (NoopStatsCache) Get(context.Context, string) (*models.DashboardStats, error) { return nil, nil }
func (NoopStatsCache) Set(context.Context, string, *models.DashboardStats) error   { return nil }
func (NoopStatsCache) Invalidate(context.Context, string) error                    { return nil }

// NewRedisClient connects to addr, or returns nil when addr is empty.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
