package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPlan struct {
	Destination string   `json:"destination"`
	Highlights  []string `json:"highlights"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache("redis://"+mr.Addr(), "test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCacheSetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	in := cachedPlan{Destination: "Paris, France", Highlights: []string{"Seine river cruise"}}
	require.NoError(t, c.Set(ctx, "plan:paris, france", in, time.Minute))
	assert.True(t, mr.Exists("test:plan:paris, france"))

	var out cachedPlan
	require.NoError(t, c.Get(ctx, "plan:paris, france", &out))
	assert.Equal(t, in, out)
}

func TestRedisCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var out cachedPlan
	err := c.Get(context.Background(), "plan:nowhere", &out)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", cachedPlan{Destination: "Bali"}, time.Second))
	mr.FastForward(2 * time.Second)

	var out cachedPlan
	assert.ErrorIs(t, c.Get(ctx, "k", &out), ErrMiss)
}

func TestRedisCacheDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b"))
	require.NoError(t, c.Delete(ctx))

	var n int
	assert.ErrorIs(t, c.Get(ctx, "a", &n), ErrMiss)
	assert.ErrorIs(t, c.Get(ctx, "b", &n), ErrMiss)
}

func TestNewRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache("not a url", "")
	assert.Error(t, err)
}
