package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheExpiry(t *testing.T) {
	c := NewInMemoryCache()
	t.Cleanup(func() { _ = c.Close() })

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "cards.all|en", []byte("[]"), time.Minute))
	require.NoError(t, c.Set(ctx, "forever", []byte("x"), 0))

	v, ok, err := c.Get(ctx, "cards.all|en")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("[]"), v)

	now = now.Add(2 * time.Minute)
	_, ok, err = c.Get(ctx, "cards.all|en")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryCacheDeletePrefix(t *testing.T) {
	c := NewInMemoryCache()
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	for _, k := range []string{"cards.all|en", "cards.key|ar00|es", "tutorials.all|en"} {
		require.NoError(t, c.Set(ctx, k, []byte("v"), 0))
	}
	require.NoError(t, c.DeletePrefix(ctx, "cards."))

	_, ok, _ := c.Get(ctx, "cards.all|en")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "cards.key|ar00|es")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "tutorials.all|en")
	assert.True(t, ok)

	require.NoError(t, c.Flush(ctx))
	_, ok, _ = c.Get(ctx, "tutorials.all|en")
	assert.False(t, ok)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}
