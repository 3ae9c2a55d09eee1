// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"jacms/internal/models"
)

const (
	// categoryListKey is the Valkey key for the cached flat category list.
	categoryListKey = "categories:list"

	// DefaultCategoryTTL is how long a cached category list stays valid.
	DefaultCategoryTTL = 5 * time.Minute
)

// CategoryCache manages cached category list responses in Valkey.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache creates a category cache backed by the given Valkey client.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl == 0 {
		ttl = DefaultCategoryTTL
	}
	return &CategoryCache{client: client, ttl: ttl}
}

// GetList retrieves the cached category list. Returns false on miss or on
// any cache error — the caller falls through to the database.
func (cc *CategoryCache) GetList(ctx context.Context) ([]models.Category, bool) {
	payload, err := cc.client.Get(ctx, categoryListKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "error", err)
		return nil, false
	}

	var items []models.Category
	if err := json.Unmarshal(payload, &items); err != nil {
		slog.Warn("category cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("category cache hit")
	return items, true
}

// SetList stores the category list with the configured TTL.
func (cc *CategoryCache) SetList(ctx context.Context, items []models.Category) {
	payload, err := json.Marshal(items)
	if err != nil {
		slog.Warn("category cache encode error", "error", err)
		return
	}
	if err := cc.client.Set(ctx, categoryListKey, payload, cc.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "error", err)
	}
}

// Invalidate drops the cached list. Called after every create, update,
// or delete.
func (cc *CategoryCache) Invalidate(ctx context.Context) {
	if err := cc.client.Del(ctx, categoryListKey).Err(); err != nil {
		slog.Warn("category cache invalidate error", "error", err)
	}
	slog.Debug("category cache invalidated")
}
