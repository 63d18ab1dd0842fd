package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "boutique_hotel/internal/adapters/redis"
	"boutique_hotel/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	in := domain.PlacePhotos{PlaceID: "p1", Photos: []string{"a", "b"}}
	require.NoError(t, c.Set(ctx, "photos:abc", in, 60))
	assert.True(t, mr.Exists("boutique:photos:abc"), "key is namespaced")

	var out domain.PlacePhotos
	ok, err := c.Get(ctx, "photos:abc", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestCache_MissAndExpiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	var out domain.PlacePhotos
	ok, err := c.Get(ctx, "nope", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "short", domain.PlacePhotos{Photos: []string{}}, 1))
	mr.FastForward(2 * time.Second)
	ok, err = c.Get(ctx, "short", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Del(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []string{"x"}, 60))
	require.NoError(t, c.Del(ctx, "k"))

	var out []string
	ok, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_CorruptValueIsMiss(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set("boutique:bad", "{not json"))

	var out domain.PlacePhotos
	ok, err := c.Get(context.Background(), "bad", &out)
	assert.Error(t, err)
	assert.False(t, ok)
}
