package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "theme:s1", "dark", 0))
	var s string
	require.NoError(t, mc.Get(ctx, "theme:s1", &s))
	assert.Equal(t, "dark", s)

	type prefs struct {
		Theme string `json:"theme"`
	}
	require.NoError(t, mc.Set(ctx, "prefs", prefs{Theme: "light"}, time.Minute))
	var p prefs
	require.NoError(t, mc.Get(ctx, "prefs", &p))
	assert.Equal(t, "light", p.Theme)

	err := mc.Get(ctx, "missing", &s)
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "k", "v", time.Second))
	now = now.Add(2 * time.Second)

	var s string
	assert.ErrorIs(t, mc.Get(ctx, "k", &s), ErrCacheMiss)
	assert.Zero(t, mc.Len())
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { now = now.Add(time.Millisecond); return now }

	require.NoError(t, mc.Set(ctx, "a", "1", 0))
	require.NoError(t, mc.Set(ctx, "b", "2", 0))
	var s string
	require.NoError(t, mc.Get(ctx, "a", &s))

	require.NoError(t, mc.Set(ctx, "c", "3", 0))

	assert.Equal(t, 2, mc.Len())
	assert.NoError(t, mc.Get(ctx, "a", &s))
	assert.ErrorIs(t, mc.Get(ctx, "b", &s), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "c", &s))
}

func TestMemoryCache_OverwriteDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(1))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", "1", 0))
	require.NoError(t, mc.Set(ctx, "a", "2", 0))

	var s string
	require.NoError(t, mc.Get(ctx, "a", &s))
	assert.Equal(t, "2", s)
}

func TestMemoryCache_DeleteAndClose(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	require.NoError(t, mc.Set(ctx, "a", "1", 0))
	require.NoError(t, mc.Delete(ctx, "a", "never-set"))
	var s string
	assert.ErrorIs(t, mc.Get(ctx, "a", &s), ErrCacheMiss)

	assert.NoError(t, mc.Close())
	assert.NoError(t, mc.Close())
}

func TestLayeredCache_ReadsThroughAndWritesThrough(t *testing.T) {
	ctx := context.Background()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2)
	defer lc.Close()

	require.NoError(t, l2.Set(ctx, "theme:s1", "light", 0))

	var s string
	require.NoError(t, lc.Get(ctx, "theme:s1", &s))
	assert.Equal(t, "light", s)

	// Served from L1 after the first read.
	require.NoError(t, l2.Delete(ctx, "theme:s1"))
	require.NoError(t, lc.Get(ctx, "theme:s1", &s))
	assert.Equal(t, "light", s)

	require.NoError(t, lc.Set(ctx, "theme:s2", "dark", 0))
	require.NoError(t, l2.Get(ctx, "theme:s2", &s))
	assert.Equal(t, "dark", s)

	require.NoError(t, lc.Delete(ctx, "theme:s2"))
	assert.ErrorIs(t, lc.Get(ctx, "theme:s2", &s), ErrCacheMiss)
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "theme:abc", GenerateKey("theme", "abc"))
}
