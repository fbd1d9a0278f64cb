package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "summary:"

// CachedSource decorates a Source with a per-user Redis cache. A cache miss
// builds the payload and stores it with the configured TTL; cache errors
// degrade to a direct build rather than failing the request.
type CachedSource struct {
	src Source
	rdb *redis.Client
	ttl time.Duration
}

// NewCachedSource wraps src with a Redis cache.
func NewCachedSource(src Source, rdb *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{src: src, rdb: rdb, ttl: ttl}
}

// Build returns the cached payload when present, otherwise builds and caches.
func (c *CachedSource) Build(ctx context.Context, userID string) (*BulkPayload, error) {
	key := cacheKeyPrefix + userID

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var p BulkPayload
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		// Corrupt entry: fall through and rebuild.
	}

	p, err := c.src.Build(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("summary cache set failed", "user", userID, "err", err)
		}
	}
	return p, nil
}

// Invalidate drops the cached payload for one user.
func (c *CachedSource) Invalidate(ctx context.Context, userID string) error {
	if err := c.rdb.Del(ctx, cacheKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("summary cache invalidate: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached payload. Called after a view refresh so
// no client keeps reading statistics computed against the old view shapes.
func (c *CachedSource) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("summary cache delete failed", "key", iter.Val(), "err", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("summary cache scan: %w", err)
	}
	return nil
}
