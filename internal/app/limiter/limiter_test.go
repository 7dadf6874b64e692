package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIP(t *testing.T) {
	h1 := HashIP("10.0.0.1")
	h2 := HashIP("10.0.0.1")
	h3 := HashIP("10.0.0.2")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	// Raw address must not survive into the key material.
	assert.NotContains(t, h1, "10.0.0.1")
}

// fakeRedis keeps counters and TTLs in maps, mimicking the handful of
// commands the limiter issues.
type fakeRedis struct {
	counters map[string]int64
	expiries map[string]time.Duration
}

var _ redisClient = (*fakeRedis)(nil)

func newFakeRedis() *fakeRedis {
	return &fakeRedis{counters: map[string]int64{}, expiries: map[string]time.Duration{}}
}

func (f *fakeRedis) TTL(_ context.Context, key string) *redis.DurationCmd {
	if ttl, ok := f.expiries[key]; ok {
		return redis.NewDurationResult(ttl, nil)
	}
	return redis.NewDurationResult(-2*time.Second, nil) // key does not exist
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counters[key]++
	return redis.NewIntResult(f.counters[key], nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expiries[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.StatusCmd {
	f.counters[key] = 1
	f.expiries[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.counters[key]; ok {
			n++
		}
		delete(f.counters, key)
		delete(f.expiries, key)
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisLimiter_BlocksAfterMaxFails(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	lim := NewRedisWithClient(rdb, 15*time.Minute, 3, 10*time.Minute)

	ipHash := HashIP("10.0.0.1")

	allowed, _, err := lim.Allow(ctx, "ann@x.com", ipHash)
	require.NoError(t, err)
	assert.True(t, allowed)

	for i := 0; i < 2; i++ {
		blocked, _, err := lim.Failure(ctx, "ann@x.com", ipHash)
		require.NoError(t, err)
		assert.False(t, blocked, "attempt %d should not block yet", i+1)
	}

	blocked, retryAfter, err := lim.Failure(ctx, "ann@x.com", ipHash)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Equal(t, 10*time.Minute, retryAfter)

	allowed, retryAfter, err = lim.Allow(ctx, "ann@x.com", ipHash)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 10*time.Minute, retryAfter)
}

func TestRedisLimiter_SuccessResets(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	lim := NewRedisWithClient(rdb, 15*time.Minute, 3, 10*time.Minute)

	ipHash := HashIP("10.0.0.1")

	for i := 0; i < 2; i++ {
		_, _, err := lim.Failure(ctx, "ann@x.com", ipHash)
		require.NoError(t, err)
	}

	require.NoError(t, lim.Success(ctx, "ann@x.com", ipHash))

	// Counter restarted: two more failures still do not block.
	for i := 0; i < 2; i++ {
		blocked, _, err := lim.Failure(ctx, "ann@x.com", ipHash)
		require.NoError(t, err)
		assert.False(t, blocked)
	}
}

func TestRedisLimiter_KeysAreScopedPerPair(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	lim := NewRedisWithClient(rdb, 15*time.Minute, 1, 10*time.Minute)

	_, _, err := lim.Failure(ctx, "ann@x.com", HashIP("10.0.0.1"))
	require.NoError(t, err)

	// Same email, different address: unaffected.
	allowed, _, err := lim.Allow(ctx, "ann@x.com", HashIP("10.0.0.2"))
	require.NoError(t, err)
	assert.True(t, allowed)

	// Different email, same address: unaffected.
	allowed, _, err = lim.Allow(ctx, "bob@x.com", HashIP("10.0.0.1"))
	require.NoError(t, err)
	assert.True(t, allowed)

	// The offending pair is blocked (maxFails = 1).
	allowed, _, err = lim.Allow(ctx, "ann@x.com", HashIP("10.0.0.1"))
	require.NoError(t, err)
	assert.False(t, allowed)
}
