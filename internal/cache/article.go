// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// article.go provides a Valkey-backed cache for single-article JSON
// responses. Reads on the admin detail endpoint hit the cache first; every
// mutation of an article invalidates its entry.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// articleKeyPrefix is the Valkey key prefix for cached articles.
	articleKeyPrefix = "article:"

	// DefaultArticleTTL is how long a cached article response stays valid.
	DefaultArticleTTL = 5 * time.Minute
)

// ArticleCache manages cached article JSON in Valkey.
type ArticleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewArticleCache creates an article cache backed by the given Valkey client.
func NewArticleCache(client *redis.Client, ttl time.Duration) *ArticleCache {
	if ttl == 0 {
		ttl = DefaultArticleTTL
	}
	return &ArticleCache{client: client, ttl: ttl}
}

// Get retrieves cached JSON for an article ID. Returns false on miss.
func (ac *ArticleCache) Get(ctx context.Context, id string) ([]byte, bool) {
	val, err := ac.client.Get(ctx, articleKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("article cache get error", "id", id, "error", err)
		return nil, false
	}
	slog.Debug("article cache hit", "id", id)
	return val, true
}

// Set stores the JSON response for an article ID with the configured TTL.
func (ac *ArticleCache) Set(ctx context.Context, id string, payload []byte) {
	if err := ac.client.Set(ctx, articleKeyPrefix+id, payload, ac.ttl).Err(); err != nil {
		slog.Warn("article cache set error", "id", id, "error", err)
	}
}

// Invalidate removes a single article from the cache.
func (ac *ArticleCache) Invalidate(ctx context.Context, id string) {
	if err := ac.client.Del(ctx, articleKeyPrefix+id).Err(); err != nil {
		slog.Warn("article cache invalidate error", "id", id, "error", err)
	}
	slog.Debug("article cache invalidated", "id", id)
}

// InvalidateAll removes all cached articles by scanning for the prefix.
// Used by the batch archive endpoint, which touches many articles at once.
func (ac *ArticleCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := ac.client.Scan(ctx, cursor, articleKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("article cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := ac.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("article cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("article cache fully cleared", "deleted", deleted)
	}
}
