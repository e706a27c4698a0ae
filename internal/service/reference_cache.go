package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"beedical/internal/infrastructure/cache"
	"beedical/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// Cache keys of the read-mostly data served from Redis
const (
	CacheKeyCities            = "ref:cities"
	CacheKeySpecialties       = "ref:specialties"
	CacheKeyConfirmedByDoctor = "appointments:confirmed"
)

const referenceCacheTimeout = 2 * time.Second

// ReferenceCache keeps JSON snapshots of slow-changing lists in Redis.
// Redis failures never fail the caller: reads fall through to the loader and
// writes are logged.
type ReferenceCache struct {
	store   cache.KVStore
	ttl     time.Duration
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewReferenceCache(store cache.KVStore, ttl time.Duration, log *logrus.Logger, m *metrics.Metrics) *ReferenceCache {
	return &ReferenceCache{
		store:   store,
		ttl:     ttl,
		log:     log,
		metrics: m,
	}
}

// GetOrLoad returns the cached value of key, calling load and storing its
// result on a miss.
func GetOrLoad[T any](ctx context.Context, c *ReferenceCache, key string, load func(context.Context) (T, error)) (T, error) {
	if c != nil {
		if cached, ok := c.lookup(ctx, key); ok {
			var value T
			if err := json.Unmarshal([]byte(cached), &value); err == nil {
				c.metrics.RecordCacheLookup(key, true)
				return value, nil
			}
			c.log.Warnf("Discarding undecodable cache entry %s", key)
		}
		c.metrics.RecordCacheLookup(key, false)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if c != nil {
		c.save(ctx, key, value)
	}
	return value, nil
}

// Invalidate drops keys; failures are logged only.
func (c *ReferenceCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), referenceCacheTimeout)
	defer cancel()

	if err := c.store.Delete(ctx, keys...); err != nil {
		c.log.Warnf("Failed to invalidate cache keys %v: %+v", keys, err)
	}
}

// Warm writes all entries in a single Redis transaction
func (c *ReferenceCache) Warm(ctx context.Context, entries map[string]interface{}) error {
	if c == nil {
		return nil
	}
	values := make(map[string]string, len(entries))
	for key, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode cache entry %s: %w", key, err)
		}
		values[key] = string(raw)
	}

	if err := c.store.SetMany(ctx, values, c.ttl); err != nil {
		return err
	}
	c.log.Infof("Reference cache warmed with %d entries", len(values))
	return nil
}

func (c *ReferenceCache) lookup(ctx context.Context, key string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, referenceCacheTimeout)
	defer cancel()

	cached, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.log.Warnf("Cache read failed for %s, falling back to database: %+v", key, err)
		}
		return "", false
	}
	return cached, true
}

func (c *ReferenceCache) save(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("Failed to encode cache entry %s: %+v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), referenceCacheTimeout)
	defer cancel()

	if err := c.store.Set(ctx, key, string(raw), c.ttl); err != nil {
		c.log.Warnf("Failed to write cache entry %s: %+v", key, err)
	}
}
