package limiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a redis-backed limiter: a failure counter with a sliding window
// and a separate block key whose TTL doubles as the retry-after hint.
type Redis struct {
	rdb      redisClient
	window   time.Duration
	maxFails int
	blockFor time.Duration
}

// redisClient is the slice of *redis.Client the limiter needs; tests supply
// a fake.
type redisClient interface {
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

func NewRedis(rdb *redis.Client, window time.Duration, maxFails int, blockFor time.Duration) *Redis {
	return &Redis{rdb: rdb, window: window, maxFails: maxFails, blockFor: blockFor}
}

// NewRedisWithClient constructs a limiter over any client implementation.
func NewRedisWithClient(rdb redisClient, window time.Duration, maxFails int, blockFor time.Duration) *Redis {
	return &Redis{rdb: rdb, window: window, maxFails: maxFails, blockFor: blockFor}
}

func failKey(email, ipHash string) string  { return "login_fail:" + email + ":" + ipHash }
func blockKey(email, ipHash string) string { return "login_block:" + email + ":" + ipHash }

// Allow reports whether login is currently allowed and a retry-after duration.
func (l *Redis) Allow(ctx context.Context, email, ipHash string) (bool, time.Duration, error) {
	ttl, err := l.rdb.TTL(ctx, blockKey(email, ipHash)).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl > 0 {
		return false, ttl, nil
	}
	return true, 0, nil
}

// Success resets counters for (email, ip).
func (l *Redis) Success(ctx context.Context, email, ipHash string) error {
	return l.rdb.Del(ctx, failKey(email, ipHash), blockKey(email, ipHash)).Err()
}

// Failure records a failed attempt; once maxFails is reached within the
// window a block key is placed for blockFor.
func (l *Redis) Failure(ctx context.Context, email, ipHash string) (bool, time.Duration, error) {
	fk := failKey(email, ipHash)
	fails, err := l.rdb.Incr(ctx, fk).Result()
	if err != nil {
		return false, 0, err
	}
	if fails == 1 {
		if err := l.rdb.Expire(ctx, fk, l.window).Err(); err != nil {
			return false, 0, err
		}
	}
	if int(fails) >= l.maxFails {
		if err := l.rdb.Set(ctx, blockKey(email, ipHash), 1, l.blockFor).Err(); err != nil {
			return false, 0, err
		}
		if err := l.rdb.Del(ctx, fk).Err(); err != nil {
			return false, 0, err
		}
		return true, l.blockFor, nil
	}
	return false, 0, nil
}
