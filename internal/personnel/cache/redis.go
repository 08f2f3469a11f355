// Package cache holds the Redis read-through cache for duty histories.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"astrotrack/internal/personnel/models"
	"astrotrack/pkg/platform/sentinel"
)

const keyPrefix = "personnel:history:"

// DefaultTTL bounds how long a history written by a reader that raced an
// invalidation can stay stale.
const DefaultTTL = 5 * time.Minute

// RedisHistoryCache stores serialized duty histories keyed by person name.
type RedisHistoryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedis(client redis.Cmdable, ttl time.Duration) *RedisHistoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisHistoryCache{client: client, ttl: ttl}
}

func key(name string) string {
	return keyPrefix + name
}

// Get returns sentinel.ErrNotFound on a miss.
func (c *RedisHistoryCache) Get(ctx context.Context, name string) (*models.DutyHistory, error) {
	data, err := c.client.Get(ctx, key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get duty history: %w", err)
	}
	var history models.DutyHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode duty history: %w", err)
	}
	return &history, nil
}

func (c *RedisHistoryCache) Set(ctx context.Context, name string, history *models.DutyHistory) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode duty history: %w", err)
	}
	if err := c.client.Set(ctx, key(name), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set duty history: %w", err)
	}
	return nil
}

func (c *RedisHistoryCache) Invalidate(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, key(name))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate duty history: %w", err)
	}
	return nil
}
