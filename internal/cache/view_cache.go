package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCache holds the per-owner read view (posts + config) in Redis.
// Mutations call Invalidate so the next read recomputes from the database.
// A nil *ViewCache is valid and caches nothing.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration

	hits          atomic.Int64
	misses        atomic.Int64
	invalidations atomic.Int64
	stale         atomic.Int64
}

func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ViewCache{client: client, ttl: ttl}
}

func homeKey(ownerID string) string { return fmt.Sprintf("view:home:%s", ownerID) }

// genKey 每次写操作自增，读路径用它判断构建期间是否有写入
func genKey(ownerID string) string { return fmt.Sprintf("view:gen:%s", ownerID) }

// Generation returns the owner's current write generation. A missing key is 0.
func (c *ViewCache) Generation(ctx context.Context, ownerID string) (int64, error) {
	if c == nil {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, genKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get decodes the cached view into dst. ok is false on a miss.
func (c *ViewCache) Get(ctx context.Context, ownerID string, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, homeKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// 脏数据直接丢弃，按未命中处理
		_ = c.client.Del(ctx, homeKey(ownerID)).Err()
		c.misses.Add(1)
		return false, nil
	}
	c.hits.Add(1)
	return true, nil
}

// Set stores v only if the owner's generation still equals gen, i.e. no
// mutation was invalidated after gen was read. A stale view is dropped and
// stored reports false.
func (c *ViewCache) Set(ctx context.Context, ownerID string, gen int64, v any) (stored bool, err error) {
	if c == nil {
		return false, nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return false, err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey(ownerID)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, homeKey(ownerID), payload, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey(ownerID))
	if errors.Is(err, redis.TxFailedErr) {
		// 提交前 generation 被改动
		stored, err = false, nil
	}
	if err != nil {
		return false, err
	}
	if !stored {
		c.stale.Add(1)
	}
	return stored, nil
}

// Invalidate bumps the owner's generation and drops the cached view in one
// transaction, so a view built before the bump can no longer be stored.
func (c *ViewCache) Invalidate(ctx context.Context, ownerID string) error {
	if c == nil {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(ownerID))
		pipe.Del(ctx, homeKey(ownerID))
		return nil
	})
	if err != nil {
		return err
	}
	c.invalidations.Add(1)
	return nil
}

// Counters reports cache activity since start.
func (c *ViewCache) Counters() ViewCacheCounters {
	if c == nil {
		return ViewCacheCounters{}
	}
	return ViewCacheCounters{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
		Stale:         c.stale.Load(),
	}
}

type ViewCacheCounters struct {
	Hits          int64
	Misses        int64
	Invalidations int64
	// Stale counts views dropped because a write landed while they were built.
	Stale         int64
}
