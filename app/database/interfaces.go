package database

import (
	"context"
	"time"
)

type ResponseRepository interface {
	GetResponse(ctx context.Context, key string) ([]byte, bool, error)
	SetResponse(ctx context.Context, key, url string, body []byte, ttl time.Duration) error
	PurgeExpired(ctx context.Context) (int64, error)
	GetStats(ctx context.Context) (CacheStats, error)
}
