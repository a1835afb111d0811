package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oggyb/match-service/internal/config"
	svcErr "github.com/oggyb/match-service/internal/errors"
)

const (
	defaultLockTTL  = 5 * time.Second
	defaultLockWait = 3 * time.Second
	defaultCountTTL = time.Hour

	minBackoff = 5 * time.Millisecond
	maxBackoff = 100 * time.Millisecond
)

// setIfGenerationScript writes the counter only while the generation the
// caller read before counting is still current.
var setIfGenerationScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2])
if gen == false then
	gen = "0"
end
if gen ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// releaseScript deletes the lock only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCache backs the per-pair lock and the who-liked-me counters.
type RedisCache struct {
	Client *redis.Client

	lockTTL  time.Duration
	lockWait time.Duration
	countTTL time.Duration
}

// Option tweaks a RedisCache.
type Option func(*RedisCache)

func WithLockTTL(d time.Duration) Option {
	return func(c *RedisCache) {
		if d > 0 {
			c.lockTTL = d
		}
	}
}

func WithLockWait(d time.Duration) Option {
	return func(c *RedisCache) {
		if d > 0 {
			c.lockWait = d
		}
	}
}

func WithCountTTL(d time.Duration) Option {
	return func(c *RedisCache) {
		if d > 0 {
			c.countTTL = d
		}
	}
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return NewWithClient(redis.NewClient(opts),
		WithLockTTL(cfg.Matching.PairLockTTL),
		WithLockWait(cfg.Matching.PairLockWait),
		WithCountTTL(cfg.Matching.LikeCountTTL),
	)
}

// NewWithClient wraps an existing client. Tests point it at miniredis.
func NewWithClient(client *redis.Client, opts ...Option) *RedisCache {
	c := &RedisCache{
		Client:   client,
		lockTTL:  defaultLockTTL,
		lockWait: defaultLockWait,
		countTTL: defaultCountTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// KeyForLikeCount generates Redis key for a user's like count
func (c *RedisCache) KeyForLikeCount(userID string) string {
	return "likes:count:" + userID
}

// KeyForLikeGeneration holds a counter bumped on every invalidation of the user's like count.
func (c *RedisCache) KeyForLikeGeneration(userID string) string {
	return "likes:gen:" + userID
}

// KeyForPairLock is the same for (a, b) and (b, a).
func (c *RedisCache) KeyForPairLock(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("lock:pair:%s:%s", a, b)
}

// GetLikeCount returns the cached count. found is false on a miss.
func (c *RedisCache) GetLikeCount(ctx context.Context, userID string) (int64, bool, error) {
	key := c.KeyForLikeCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// garbage in the slot, treat as a miss
		_ = c.Client.Del(ctx, key).Err()
		return 0, false, nil
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, key, c.countTTL).Err()
	return n, true, nil
}

// LikeCountGeneration returns the current generation of the user's counter.
// Read it before counting and pass it to SetLikeCount.
func (c *RedisCache) LikeCountGeneration(ctx context.Context, userID string) (int64, error) {
	gen, err := c.Client.Get(ctx, c.KeyForLikeGeneration(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetLikeCount stores count unless the counter was invalidated after generation
// was read. stored is false when the write was skipped.
func (c *RedisCache) SetLikeCount(ctx context.Context, userID string, count, generation int64) (bool, error) {
	res, err := setIfGenerationScript.Run(ctx, c.Client,
		[]string{c.KeyForLikeCount(userID), c.KeyForLikeGeneration(userID)},
		strconv.FormatInt(generation, 10), count, c.countTTL.Milliseconds(),
	).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// InvalidateLikeCount drops cached counters and bumps their generations, so
// the next read recomputes them and in-flight recomputations are discarded.
func (c *RedisCache) InvalidateLikeCount(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Incr(ctx, c.KeyForLikeGeneration(id))
			pipe.Del(ctx, c.KeyForLikeCount(id))
		}
		return nil
	})
	return err
}

// LockPair takes the mutual-exclusion lock for the unordered pair (a, b).
//
// Behavior:
//   - SET NX with lockTTL, so a crashed holder cannot block the pair forever.
//   - Retries with exponential backoff until acquired, ctx ends or lockWait elapses.
//   - The returned unlock releases the lock only if this caller still owns it.
func (c *RedisCache) LockPair(ctx context.Context, a, b string) (func(), error) {
	key := c.KeyForPairLock(a, b)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, c.lockWait)
	defer cancel()

	backoff := minBackoff
	for {
		ok, err := c.Client.SetNX(waitCtx, key, token, c.lockTTL).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if waitCtx.Err() != nil {
				return nil, svcErr.Unavailable("acquire pair lock", waitCtx.Err())
			}
			return nil, svcErr.Unavailable("acquire pair lock", err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, svcErr.Unavailable("acquire pair lock", errors.New("lock wait exceeded"))
		case <-timer.C:
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	unlock := func() {
		// release even if the request ctx is already gone
		relCtx, relCancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer relCancel()
		_ = releaseScript.Run(relCtx, c.Client, []string{key}, token).Err()
	}
	return unlock, nil
}
