// Package cache keeps the full list of product handles in Redis so the arcade
// navigator does not walk the whole catalog on every product page.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/pkg/database"
)

// HandlesKey is the Redis key holding the JSON-encoded handle list.
const HandlesKey = "storefront:catalog:handles"

// HandleSource loads every product handle from the catalog.
type HandleSource interface {
	AllProductHandles(ctx context.Context) ([]string, error)
}

// HandleCache serves product handles from Redis, refilling from the catalog
// on a miss.
type HandleCache struct {
	client redis.Cmdable
	source HandleSource
	ttl    time.Duration
	logger *slog.Logger
}

// NewHandleCache creates a cache in front of source.
func NewHandleCache(client redis.Cmdable, source HandleSource, ttl time.Duration, logger *slog.Logger) *HandleCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &HandleCache{client: client, source: source, ttl: ttl, logger: logger}
}

// Handles returns every product handle in catalog order. Any failure degrades
// to an empty list so product pages still render without navigation.
func (c *HandleCache) Handles(ctx context.Context) []string {
	handles, err := c.get(ctx)
	if err == nil {
		return handles
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "handle cache read failed", slog.String("error", err.Error()))
	}

	handles, err = c.source.AllProductHandles(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load product handles", slog.String("error", err.Error()))
		return []string{}
	}

	if err := c.set(ctx, handles); err != nil {
		c.logger.WarnContext(ctx, "handle cache write failed", slog.String("error", err.Error()))
	}
	return handles
}

// Invalidate drops the cached list.
func (c *HandleCache) Invalidate(ctx context.Context) error {
	ctx, done := database.TraceCommand(ctx, "DEL", HandlesKey)
	err := c.client.Del(ctx, HandlesKey).Err()
	done(err)
	if err != nil {
		return fmt.Errorf("redis del handles: %w", err)
	}
	return nil
}

func (c *HandleCache) get(ctx context.Context) (handles []string, err error) {
	ctx, done := database.TraceCommand(ctx, "GET", HandlesKey)
	defer func() { done(err) }()

	data, err := c.client.Get(ctx, HandlesKey).Bytes()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &handles); err != nil {
		return nil, fmt.Errorf("unmarshal handles: %w", err)
	}
	if handles == nil {
		handles = []string{}
	}
	return handles, nil
}

func (c *HandleCache) set(ctx context.Context, handles []string) error {
	data, err := json.Marshal(handles)
	if err != nil {
		return fmt.Errorf("marshal handles: %w", err)
	}

	ctx, done := database.TraceCommand(ctx, "SET", HandlesKey)
	err = c.client.Set(ctx, HandlesKey, data, c.ttl).Err()
	done(err)
	if err != nil {
		return fmt.Errorf("redis set handles: %w", err)
	}
	return nil
}
