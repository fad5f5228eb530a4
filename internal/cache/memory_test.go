package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", cachedThing{Name: "a", Count: 2}, time.Minute))

	var got cachedThing
	hit, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, cachedThing{Name: "a", Count: 2}, got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()

	var got cachedThing
	hit, err := c.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", cachedThing{Name: "a"}, 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	var got cachedThing
	hit, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheDel(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "k2", 2, time.Minute))
	require.NoError(t, c.Del(ctx, "k1", "k2"))

	var got int
	hit, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheDelByPrefix(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "applications:id:1", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "applications:list:u1", 2, time.Minute))
	require.NoError(t, c.Set(ctx, "technologies:id:1", 3, time.Minute))

	require.NoError(t, c.DelByPrefix(ctx, "applications:"))

	var got int
	hit, _ := c.Get(ctx, "applications:id:1", &got)
	assert.False(t, hit)
	hit, _ = c.Get(ctx, "applications:list:u1", &got)
	assert.False(t, hit)
	hit, _ = c.Get(ctx, "technologies:id:1", &got)
	assert.True(t, hit, "other prefixes survive")
}

func TestGetOrSetPopulatesOnMiss(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	calls := 0

	factory := func() (*cachedThing, error) {
		calls++
		return &cachedThing{Name: "fresh"}, nil
	}

	got, err := GetOrSet(ctx, c, "k", time.Minute, factory)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
	assert.Equal(t, 1, calls)

	got, err = GetOrSet(ctx, c, "k", time.Minute, factory)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
	assert.Equal(t, 1, calls, "second read served from cache")
}

func TestGetOrSetPropagatesFactoryError(t *testing.T) {
	c := NewMemoryCache()
	boom := errors.New("boom")

	_, err := GetOrSet(context.Background(), c, "k", time.Minute, func() (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "applications:id:42", Key("applications", "id", "42"))
}
