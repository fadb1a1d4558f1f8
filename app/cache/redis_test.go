package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)

	cache, err := NewRedisCache(context.Background(), "redis://"+server.Addr()+"/0")
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	return cache, server
}

func TestRedisCacheSetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := cache.GetResponse(ctx, "missing"); err != nil || ok {
		t.Errorf("Expected miss without error, got ok=%v err=%v", ok, err)
	}

	if err := cache.SetResponse(ctx, "abc", "https://epic.test/api/natural", []byte(`[1]`), time.Minute); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	body, ok, err := cache.GetResponse(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("Expected hit, got ok=%v err=%v", ok, err)
	}
	if string(body) != `[1]` {
		t.Errorf("Expected body [1], got %s", body)
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	if err := cache.SetResponse(ctx, "abc", "u", []byte("x"), time.Minute); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	server.FastForward(2 * time.Minute)

	if _, ok, _ := cache.GetResponse(ctx, "abc"); ok {
		t.Error("Expected expired entry to be a miss")
	}
}

func TestRedisCacheStats(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	cache.SetResponse(ctx, "a", "u", []byte("12345"), time.Minute)
	cache.SetResponse(ctx, "b", "u", []byte("123"), time.Minute)
	server.Set("unrelated", "ignored")

	stats, err := cache.GetStats(ctx)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("Expected 2 entries, got %d", stats.Entries)
	}
	if stats.Bytes != 8 {
		t.Errorf("Expected 8 bytes, got %d", stats.Bytes)
	}

	purged, err := cache.PurgeExpired(ctx)
	if err != nil || purged != 0 {
		t.Errorf("Expected no-op purge, got %d, %v", purged, err)
	}
}

func TestNewRedisCacheInvalidURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not a url"); err == nil {
		t.Error("Expected error for invalid URL")
	}
}
