package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache keeps recently fetched upstream snapshots in Redis for a
// short TTL so a burst of renders doesn't hammer the ledger API. A missing
// or unreachable Redis degrades to direct fetches, never to an error.
type SnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSnapshotCache connects to Redis at the given URL. If Redis is not
// available the cache is disabled and every lookup misses.
func NewSnapshotCache(redisURL string, ttl time.Duration) *SnapshotCache {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("invalid Redis URL, running without snapshot cache", "error", err)
		return &SnapshotCache{ttl: ttl}
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Warn("Redis not available, running without snapshot cache", "error", err)
		return &SnapshotCache{ttl: ttl}
	}

	slog.Info("snapshot cache connected", "ttl", ttl)
	return &SnapshotCache{rdb: rdb, ttl: ttl}
}

// Get loads a cached snapshot into v. Returns false on miss or any Redis
// trouble.
func (c *SnapshotCache) Get(ctx context.Context, key string, v any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("dropping unreadable cached snapshot", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores a snapshot under the cache TTL. Failures are logged and
// swallowed; the cache is best-effort.
func (c *SnapshotCache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("failed to cache snapshot", "key", key, "error", err)
	}
}
