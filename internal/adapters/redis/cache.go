// Package redisad implements domain.Cache on Redis with JSON values.
package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travel_advisor/internal/adapters/observability"
)

const metricLabel = "redis"

type Cache struct {
	rdb *redis.Client
}

func New(addr, pass string, db int) *Cache {
	return NewFromClient(redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     pass,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}))
}

// NewFromClient wraps an existing client; Close closes it.
func NewFromClient(rdb *redis.Client) *Cache { return &Cache{rdb: rdb} }

// Get decodes the value at key into dst. A missing key is (false, nil).
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		observability.ObserveCache(metricLabel, "miss")
		return false, nil
	case err != nil:
		observability.ObserveCache(metricLabel, "error")
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		observability.ObserveCache(metricLabel, "error")
		return false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	observability.ObserveCache(metricLabel, "hit")
	return true, nil
}

// Set stores v as JSON. ttlSec <= 0 stores without expiry.
func (c *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, time.Duration(max(ttlSec, 0))*time.Second).Err(); err != nil {
		observability.ObserveCache(metricLabel, "error")
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	observability.ObserveCache(metricLabel, "set")
	return nil
}

func (c *Cache) Del(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		observability.ObserveCache(metricLabel, "error")
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	observability.ObserveCache(metricLabel, "del")
	return nil
}

func (c *Cache) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.rdb.Close() }
