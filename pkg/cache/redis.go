package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReportCache is an optional Redis-backed cache for dashboard report payloads.
// A nil *ReportCache is valid and disables caching, so callers never need to
// branch on configuration.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache connects to Redis at addr. Returns nil (caching disabled)
// when addr is empty or the server is unreachable.
func NewReportCache(addr string, ttl time.Duration) *ReportCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Report cache disabled: redis at %s unreachable: %v", addr, err)
		return nil
	}

	log.Printf("Report cache enabled (redis %s, ttl %s)", addr, ttl)
	return &ReportCache{client: client, ttl: ttl}
}

// Get unmarshals the cached value for key into dest. Returns false on miss,
// decode failure, or when caching is disabled.
func (c *ReportCache) Get(key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key with the configured TTL. Failures are logged
// and swallowed; the cache is advisory.
func (c *ReportCache) Set(key string, value interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("Report cache set failed for %s: %v", key, err)
	}
}

// Close releases the underlying connection pool.
func (c *ReportCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
