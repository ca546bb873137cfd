package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/internal/cache"
)

func newRedisCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c := cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_GetSet(t *testing.T) {
	t.Parallel()

	c, mr := newRedisCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`), 48*time.Hour))
	assert.Equal(t, 48*time.Hour, mr.TTL("k"))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))

	mr.FastForward(49 * time.Hour)

	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Delete(t *testing.T) {
	t.Parallel()

	c, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestRedisCache_ServerError(t *testing.T) {
	t.Parallel()

	c, mr := newRedisCache(t)
	ctx := context.Background()

	mr.SetError("ERR boom")

	_, _, err := c.Get(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis get k")
	require.Error(t, c.Set(ctx, "k", []byte("v"), time.Minute))
}

func TestNewRedisCacheFromURL(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	c, err := cache.NewRedisCacheFromURL("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(context.Background()))

	_, err = cache.NewRedisCacheFromURL("http://nope")
	require.Error(t, err)
}
