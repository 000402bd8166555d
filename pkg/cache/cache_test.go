package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/cache"
)

func TestNilClientIsNoop(t *testing.T) {
	c := cache.New(nil, time.Minute)
	ctx := context.Background()

	assert.False(t, c.Enabled())
	require.NoError(t, c.Set(ctx, "menu:all", []string{"soup"}))

	var got []string
	assert.False(t, c.Get(ctx, "menu:all", &got))
	assert.Nil(t, got)
	assert.NoError(t, c.Forget(ctx, "menu:all"))
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *cache.Cache
	assert.False(t, c.Enabled())
	assert.False(t, c.Get(context.Background(), "k", new(int)))
}

func TestConnectUnreachableDegrades(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, closeFn, err := cache.Connect(ctx, "127.0.0.1:1", "", time.Minute)
	assert.Error(t, err)
	require.NotNil(t, c)
	assert.False(t, c.Enabled())
	assert.NoError(t, closeFn())
}
