package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "kaawa-maintenance/pkg/errors"
)

func newTestCache(t *testing.T) (CacheRepositoryInterface, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheRepository(client), mr
}

func TestRedisCache_Counters(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	n, err := cache.Incr(ctx, "login_attempts:carlos")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = cache.Incr(ctx, "login_attempts:carlos")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ok, err := cache.Expire(ctx, "login_attempts:carlos", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, err = cache.Get(ctx, "login_attempts:carlos")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisCache_SetExistsDel(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "revoked:abc", "1", time.Hour))
	exists, err := cache.Exists(ctx, "revoked:abc")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Del(ctx, "revoked:abc"))
	exists, err = cache.Exists(ctx, "revoked:abc")
	require.NoError(t, err)
	assert.False(t, exists)
}
