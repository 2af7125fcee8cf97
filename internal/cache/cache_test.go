// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
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
		keys, _ := client.Keys(ctx, responseKeyPrefix+"*").Result()
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

	// Verify connection.
	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestResponseCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()
	key := PostKey("es", "hola-mundo")
	body := []byte(`{"title":"Hola Mundo"}`)

	if _, _, ok := rc.Get(ctx, key); ok {
		t.Fatal("unexpected hit before Set")
	}

	rc.Set(ctx, key, "es", body)

	got, language, ok := rc.Get(ctx, key)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(body) {
		t.Errorf("cached body = %s", got)
	}
	if language != "es" {
		t.Errorf("cached language = %q, want es", language)
	}
}

// An entry cached under a fallback read keeps the language it was
// actually served in, not the one in the key.
func TestResponseCacheKeepsServedLanguage(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()
	rc.Set(ctx, PostKey("en", "hola-mundo"), "es", []byte(`{"fallback":true}`))

	_, language, ok := rc.Get(ctx, PostKey("en", "hola-mundo"))
	if !ok {
		t.Fatal("expected hit")
	}
	if language != "es" {
		t.Errorf("language = %q, want es", language)
	}
}

func TestResponseCacheInvalidatePosts(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()
	rc.Set(ctx, PostKey("es", "uno"), "es", []byte("1"))
	rc.Set(ctx, PostKey("en", "one"), "en", []byte("1"))

	rc.InvalidatePosts(ctx)

	if _, _, ok := rc.Get(ctx, PostKey("es", "uno")); ok {
		t.Error("es entry survived invalidation")
	}
	if _, _, ok := rc.Get(ctx, PostKey("en", "one")); ok {
		t.Error("en entry survived invalidation")
	}
}

func TestPostKey(t *testing.T) {
	if got := PostKey("es", "hola"); got != "api:post:es:hola" {
		t.Errorf("PostKey = %q", got)
	}
}
