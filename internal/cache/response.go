// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed JSON response cache for the
// anonymous read endpoints. Responses for published posts are stored per
// language and slug so repeated public reads skip the translation joins
// entirely. Any post mutation invalidates the whole post namespace since
// list pages and related entities can all be affected.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix namespaces cached API responses in Valkey.
	responseKeyPrefix = "api:"

	// postKeyPrefix namespaces post responses under the API namespace.
	postKeyPrefix = responseKeyPrefix + "post:"

	// DefaultResponseTTL is how long a cached response stays fresh.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache manages cached JSON responses in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// PostKey returns the cache key for a single post response in a language.
func PostKey(language, slug string) string {
	return postKeyPrefix + language + ":" + slug
}

// cachedResponse is the stored envelope: the serialized body plus the
// Content-Language it was rendered with, so replays carry the same
// headers as the original response.
type cachedResponse struct {
	Language string          `json:"language"`
	Body     json.RawMessage `json:"body"`
}

// Get retrieves a cached response body and its language. Returns false
// on miss; cache errors degrade to a miss so Valkey outages never fail
// a request.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, string, bool) {
	val, err := rc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, "", false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, "", false
	}
	var env cachedResponse
	if err := json.Unmarshal(val, &env); err != nil {
		slog.Warn("response cache decode error", "key", key, "error", err)
		return nil, "", false
	}
	slog.Debug("response cache hit", "key", key)
	return env.Body, env.Language, true
}

// Set stores a response body and its language under key with the
// configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key, language string, body []byte) {
	val, err := json.Marshal(cachedResponse{Language: language, Body: body})
	if err != nil {
		return
	}
	if err := rc.client.Set(ctx, key, val, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// InvalidatePosts removes every cached post response, in all languages.
// Called after any post create, update or delete.
func (rc *ResponseCache) InvalidatePosts(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, postKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("response cache cleared", "deleted", deleted)
	}
}
