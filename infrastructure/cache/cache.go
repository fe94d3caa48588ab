// Package cache keeps Data API responses for a bounded time so identical calls
// in one session do not spend quota twice.
package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"yt_view_extractor/internal/core/ports"
)

const defaultMaxEntries = 1000

var _ ports.CachePort = (*TieredCache)(nil)

// TieredCache is an in-process LRU (L1) optionally backed by Redis (L2).
type TieredCache struct {
	l1  *lru.Cache[string, entry]
	rdb *redis.Client // nil when L2 is disabled
	log ports.LoggerPort
	now func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// NewTieredCache builds the cache. An empty or unreachable redisURL disables L2.
func NewTieredCache(maxEntries int, redisURL string, logger ports.LoggerPort) (*TieredCache, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	l1, err := lru.New[string, entry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("error while creating l1 cache: %w", err)
	}

	c := &TieredCache{l1: l1, log: logger, now: time.Now}

	if redisURL != "" {
		c.rdb = connectRedis(redisURL, logger)
	}

	logger.Info(fmt.Sprintf("cache: initialized, max entries %d, redis %t", maxEntries, c.rdb != nil))
	return c, nil
}

func connectRedis(redisURL string, logger ports.LoggerPort) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Error("cache: invalid redis URL, L2 disabled", err)
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("cache: redis unreachable, L2 disabled", err)
		_ = rdb.Close()
		return nil
	}

	logger.Info("cache: L2 redis connected at " + opts.Addr)
	return rdb
}

// Key builds a deterministic cache key from the parts of a call signature.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("ytx:%x", sum[:12])
}

func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if e, ok := c.l1.Get(key); ok {
		if c.now().Before(e.expiresAt) {
			c.hits.Add(1)
			return e.data, true
		}
		c.l1.Remove(key)
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			ttl, ttlErr := c.rdb.PTTL(ctx, key).Result()
			if ttlErr == nil && ttl > 0 {
				c.l1.Add(key, entry{data: data, expiresAt: c.now().Add(ttl)})
			}
			c.hits.Add(1)
			return data, true
		case !errors.Is(err, redis.Nil):
			c.log.Warning("cache: L2 get failed: " + err.Error())
		}
	}

	c.misses.Add(1)
	return nil, false
}

func (c *TieredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.l1.Add(key, entry{data: value, expiresAt: c.now().Add(ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
			c.log.Warning("cache: L2 set failed: " + err.Error())
		}
	}
}

// Stats returns the hit and miss counters.
func (c *TieredCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *TieredCache) Len() int {
	return c.l1.Len()
}

func (c *TieredCache) Close() error {
	c.l1.Purge()
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
