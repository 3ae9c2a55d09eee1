// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"jacms/internal/models"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "categories:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestCategoryCacheSetGetInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCategoryCache(client, 1*time.Minute)
	ctx := context.Background()

	// Empty cache misses.
	if _, ok := cc.GetList(ctx); ok {
		t.Fatal("expected cache miss on empty cache")
	}

	items := []models.Category{
		{ID: uuid.New(), Name: "Technology", Slug: "technology", IsActive: true,
			Count: models.CategoryCount{Posts: 3, Children: 2}},
		{ID: uuid.New(), Name: "Business", Slug: "business", IsActive: true},
	}
	cc.SetList(ctx, items)

	got, ok := cc.GetList(ctx)
	if !ok {
		t.Fatal("expected cache hit after SetList")
	}
	if len(got) != 2 || got[0].Slug != "technology" || got[0].Count.Posts != 3 {
		t.Errorf("cached list mismatch: %+v", got)
	}

	cc.Invalidate(ctx)
	if _, ok := cc.GetList(ctx); ok {
		t.Error("expected cache miss after Invalidate")
	}
}

func TestCategoryCacheTTL(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCategoryCache(client, 1*time.Second)
	ctx := context.Background()

	cc.SetList(ctx, []models.Category{{ID: uuid.New(), Name: "Short Lived", Slug: "short-lived"}})

	if _, ok := cc.GetList(ctx); !ok {
		t.Fatal("expected cache hit before TTL expiry")
	}

	time.Sleep(1100 * time.Millisecond)

	if _, ok := cc.GetList(ctx); ok {
		t.Error("expected cache miss after TTL expiry")
	}
}
