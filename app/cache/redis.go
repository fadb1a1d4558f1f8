package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/space-prime/app/database"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "response:"

// RedisCache stores provider responses in Redis, for deployments that share
// one cache between several instances. Redis expires entries itself.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to a redis:// URL
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis", "addr", opts.Addr, "db", opts.DB)

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetResponse(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return body, true, nil
}

func (c *RedisCache) SetResponse(ctx context.Context, key, url string, body []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, keyPrefix+key, body, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// PurgeExpired is a no-op; Redis evicts expired keys on its own.
func (c *RedisCache) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (c *RedisCache) GetStats(ctx context.Context) (database.CacheStats, error) {
	var stats database.CacheStats

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		size, err := c.client.StrLen(ctx, iter.Val()).Result()
		if err != nil {
			return stats, fmt.Errorf("failed to get size of %s: %w", iter.Val(), err)
		}
		stats.Entries++
		stats.Bytes += int(size)
	}
	if err := iter.Err(); err != nil {
		return stats, fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return stats, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
