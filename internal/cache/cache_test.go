package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"dropos/internal/domain"
)

func TestNoopAlwaysMisses(t *testing.T) {
	var c MetricsCache = NoopMetricsCache{}
	_ = c.Set(context.Background(), "k", &domain.Metrics{Orders: 3}, time.Minute)
	if _, ok, err := c.Get(context.Background(), "k"); ok || err != nil {
		t.Fatalf("expected miss without error, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemoryMetricsCache()
	clock := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }
	ctx := context.Background()

	if err := c.Set(ctx, "rev-1", &domain.Metrics{GrossRevenue: 200}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, _ := c.Get(ctx, "rev-1")
	if !ok || got.GrossRevenue != 200 {
		t.Fatalf("expected hit, got ok=%v %+v", ok, got)
	}

	got.GrossRevenue = 1
	again, _, _ := c.Get(ctx, "rev-1")
	if again.GrossRevenue != 200 {
		t.Fatalf("expected cached value to be isolated from callers")
	}

	clock = clock.Add(time.Minute)
	if _, ok, _ := c.Get(ctx, "rev-1"); ok {
		t.Fatalf("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted")
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("DROPOS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set DROPOS_TEST_REDIS_ADDR to run redis integration test")
	}

	c := NewRedisMetricsCache(addr, os.Getenv("DROPOS_TEST_REDIS_PASSWORD"), 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()
	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	key := "it-" + time.Now().Format(time.RFC3339Nano)
	if _, ok, err := c.Get(ctx, key); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, key, &domain.Metrics{Orders: 7, Multiplier: 50}, 5*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok || got.Orders != 7 || got.Multiplier != 50 {
		t.Fatalf("expected stored metrics, got %+v ok=%v err=%v", got, ok, err)
	}
}
