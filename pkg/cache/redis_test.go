package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache(WithRedisURL("http://localhost:6379"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis url")
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	_, err := NewRedisCache(WithRedisAddr("127.0.0.1:1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}

func TestRedisCache_Key(t *testing.T) {
	assert.Equal(t, "stocklens:theme:s1", (&RedisCache{prefix: "stocklens"}).key("theme:s1"))
	assert.Equal(t, "theme:s1", (&RedisCache{}).key("theme:s1"))
}

type downService struct{ Service }

func (downService) Ping(context.Context) error { return errors.New("down") }
func (downService) Close() error               { return nil }

func TestLayeredCache_PingDelegates(t *testing.T) {
	ctx := context.Background()

	up := NewLayeredCache(NewMemoryCache())
	defer up.Close()
	assert.NoError(t, up.Ping(ctx))

	down := NewLayeredCache(downService{})
	defer down.Close()
	assert.EqualError(t, down.Ping(ctx), "down")
}
