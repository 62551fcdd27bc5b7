package repository

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Sequence hands out strictly increasing ordinals for document numbers
// (receipts, visitor passes).
type Sequence interface {
	Next(ctx context.Context) (int64, error)
}

// Counter is an in-process sequence starting after floor. Callers derive
// the floor from the highest ordinal already stored, so numbering carries
// on across restarts.
type Counter struct {
	mu   sync.Mutex
	last int64
}

func NewCounter(floor int64) *Counter { return &Counter{last: floor} }

func (c *Counter) Next(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last++
	return c.last, nil
}

// RedisSequence shares one counter between processes. The stored value is
// lifted to the floor first, so a flushed Redis never reissues a number
// that exists in the records.
type RedisSequence struct {
	rdb   *redis.Client
	key   string
	floor int64
}

func NewRedisSequence(rdb *redis.Client, key string, floor int64) *RedisSequence {
	return &RedisSequence{rdb: rdb, key: key, floor: floor}
}

var nextScript = redis.NewScript(`
    local floor = tonumber(ARGV[1])
    local v = redis.call('INCR', KEYS[1])
    if v <= floor then
        v = floor + 1
        redis.call('SET', KEYS[1], v)
    end
    return v
`)

func (s *RedisSequence) Next(ctx context.Context) (int64, error) {
	return nextScript.Run(ctx, s.rdb, []string{s.key}, s.floor).Int64()
}
