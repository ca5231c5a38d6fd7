package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

type listing struct {
	Names []string `json:"names"`
}

func TestProductListCache_RoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewProductListCache(rdb, time.Minute)
	ctx := context.Background()

	v, err := cache.Version(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	var got listing
	found, err := cache.Get(ctx, 5, v, &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, 5, v, listing{Names: []string{"a", "b"}}))
	assert.True(t, mr.Exists("products:seller:5:v0"))

	found, err = cache.Get(ctx, 5, v, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got.Names)

	require.NoError(t, cache.Invalidate(ctx, 5))
	assert.False(t, mr.Exists("products:seller:5:v0"))
	v, err = cache.Version(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestProductListCache_LateWriteAfterInvalidate(t *testing.T) {
	_, rdb := newTestRedis(t)
	cache := NewProductListCache(rdb, time.Minute)
	ctx := context.Background()

	// A reader takes the version, then a writer invalidates before the reader stores
	readAt, err := cache.Version(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, 3))
	require.NoError(t, cache.Set(ctx, 3, readAt, listing{Names: []string{"stale"}}))

	current, err := cache.Version(ctx, 3)
	require.NoError(t, err)
	found, err := cache.Get(ctx, 3, current, &listing{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProductListCache_SellersAreIndependent(t *testing.T) {
	_, rdb := newTestRedis(t)
	cache := NewProductListCache(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, 0, listing{Names: []string{"one"}}))
	require.NoError(t, cache.Invalidate(ctx, 2))

	var got listing
	found, err := cache.Get(ctx, 1, 0, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"one"}, got.Names)
}

func TestProductListCache_Expires(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewProductListCache(rdb, time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, 0, listing{}))
	mr.FastForward(2 * time.Second)

	found, err := cache.Get(ctx, 1, 0, &listing{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetCache_RedisDown(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.Close()

	_, err := GetCache(context.Background(), rdb, "k", &listing{})
	assert.Error(t, err)
}

func TestProductListCache_VersionRedisDown(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewProductListCache(rdb, time.Minute)
	mr.Close()

	_, err := cache.Version(context.Background(), 1)
	assert.Error(t, err)
}
