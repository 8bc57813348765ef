package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forms-server/internal/config"
	"forms-server/internal/observability"

	"github.com/redis/go-redis/v9"
)

var ErrNotInitialized = errors.New("redis client not initialized")

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient connects to Redis. A disabled configuration yields a nil client,
// which every method treats as "not available".
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info(ctx, "Redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "redis_host", Value: cfg.Host},
		observability.Field{Key: "redis_port", Value: cfg.Port},
		observability.Field{Key: "redis_db", Value: cfg.DB},
	), "successfully connected to Redis")

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// NewFromClient wraps an existing go-redis client
func NewFromClient(client *redis.Client, logger *observability.Logger) *Client {
	return &Client{client: client, logger: logger}
}

// IsEnabled returns whether Redis is enabled
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if !c.IsEnabled() {
		return nil
	}
	return c.client.Close()
}

// SlidingWindowCount drops members of key scored at or before windowStart and
// returns how many remain.
func (c *Client) SlidingWindowCount(ctx context.Context, key string, windowStart time.Time) (int64, error) {
	if !c.IsEnabled() {
		return 0, ErrNotInitialized
	}
	pipe := c.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixMilli()))
	card := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count window: %w", err)
	}
	return card.Val(), nil
}

// OldestInWindow returns the timestamp of the earliest member of key
func (c *Client) OldestInWindow(ctx context.Context, key string) (time.Time, bool, error) {
	if !c.IsEnabled() {
		return time.Time{}, false, ErrNotInitialized
	}
	oldest, err := c.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read oldest entry: %w", err)
	}
	if len(oldest) == 0 {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(int64(oldest[0].Score)), true, nil
}

// RecordInWindow adds member scored at now and refreshes the key's TTL
func (c *Client) RecordInWindow(ctx context.Context, key, member string, now time.Time, ttl time.Duration) error {
	if !c.IsEnabled() {
		return ErrNotInitialized
	}
	pipe := c.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	return nil
}
