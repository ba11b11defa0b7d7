package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rc := NewRedisCacheFromClient(client, "avku")

	t.Cleanup(func() {
		_ = rc.Close()
		mr.Close()
	})
	return mr, rc
}

func TestRedisCacheSetGetWithPrefix(t *testing.T) {
	ctx := context.Background()
	mr, rc := setupTestRedis(t)

	require.NoError(t, rc.Set(ctx, "jar:api:abc", []byte(`{"balance":1}`), time.Minute))

	raw, err := mr.Get("avku:jar:api:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"balance":1}`, raw)

	got, err := rc.Get(ctx, "jar:api:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"balance":1}`), got)
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mr, rc := setupTestRedis(t)

	require.NoError(t, rc.Set(ctx, "k", []byte("v"), 60*time.Second))

	ttl, err := rc.TTL(ctx, "k")
	require.NoError(t, err)
	assert.InDelta(t, float64(60*time.Second), float64(ttl), float64(time.Second))

	mr.FastForward(61 * time.Second)

	_, err = rc.Get(ctx, "k")
	require.ErrorIs(t, err, ErrCacheMiss)
	_, err = rc.TTL(ctx, "k")
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheDelete(t *testing.T) {
	ctx := context.Background()
	_, rc := setupTestRedis(t)

	require.NoError(t, rc.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, rc.Delete(ctx, "k"))

	_, err := rc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLayeredCacheBackfillsMemory(t *testing.T) {
	ctx := context.Background()
	mr, rc := setupTestRedis(t)
	lc := NewLayeredCache(rc, WithLayeredMemoryTTL(10*time.Second))

	require.NoError(t, mr.Set("avku:k", "from-redis"))
	mr.SetTTL("avku:k", 30*time.Second)

	got, err := lc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("from-redis"), got)

	// L1 now answers even when redis lost the key
	mr.Del("avku:k")
	got, err = lc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("from-redis"), got)
}

func TestLayeredCacheWriteThrough(t *testing.T) {
	ctx := context.Background()
	mr, rc := setupTestRedis(t)
	lc := NewLayeredCache(rc)

	require.NoError(t, lc.Set(ctx, "k", []byte("v"), time.Minute))

	raw, err := mr.Get("avku:k")
	require.NoError(t, err)
	assert.Equal(t, "v", raw)

	require.NoError(t, lc.Delete(ctx, "k"))
	_, err = lc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
