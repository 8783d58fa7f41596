// Package cache stores rendered thread views between requests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"flow-ai/threadview/internal/render"
)

// ViewCache keeps rendered views keyed by thread and version. Callers
// derive the version from everything the view depends on, so a stored view
// whose version differs is stale. Failures are logged and reported as misses.
type ViewCache interface {
	Get(ctx context.Context, threadID, version string) (*render.View, bool)
	Set(ctx context.Context, threadID, version string, view *render.View)
	Invalidate(ctx context.Context, threadID string)
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string, string) (*render.View, bool) { return nil, false }
func (NopCache) Set(context.Context, string, string, *render.View)        {}
func (NopCache) Invalidate(context.Context, string)                       {}

type entry struct {
	Version string       `json:"version"`
	View    *render.View `json:"view"`
}

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache returns a ViewCache backed by rdb.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) ViewCache {
	return &redisCache{rdb: rdb, ttl: ttl}
}

func (c *redisCache) viewKey(threadID string) string { return fmt.Sprintf("threadview:view:%s", threadID) }

func (c *redisCache) Get(ctx context.Context, threadID, version string) (*render.View, bool) {
	raw, err := c.rdb.Get(ctx, c.viewKey(threadID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("View cache read failed", "thread_id", threadID, "error", err)
		}
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		slog.Warn("Discarding undecodable cached view", "thread_id", threadID, "error", err)
		return nil, false
	}
	if e.Version != version || e.View == nil {
		return nil, false
	}
	return e.View, true
}

func (c *redisCache) Set(ctx context.Context, threadID, version string, view *render.View) {
	raw, err := json.Marshal(entry{Version: version, View: view})
	if err != nil {
		slog.Error("Failed to marshal view for cache", "thread_id", threadID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.viewKey(threadID), raw, c.ttl).Err(); err != nil {
		slog.Warn("View cache write failed", "thread_id", threadID, "error", err)
	}
}

func (c *redisCache) Invalidate(ctx context.Context, threadID string) {
	if err := c.rdb.Del(ctx, c.viewKey(threadID)).Err(); err != nil {
		slog.Warn("View cache invalidation failed", "thread_id", threadID, "error", err)
	}
}
