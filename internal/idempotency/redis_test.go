package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStoreFromClient(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "appt:p1:slot:1")
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := store.Put(ctx, "appt:p1:slot:1", "tok-123", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", stored)

	token, err := store.Get(ctx, "appt:p1:slot:1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, store.Delete(ctx, "appt:p1:slot:1"))

	_, err = store.Get(ctx, "appt:p1:slot:1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "appt:p1:slot:1", "tok-123", time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, "appt:p1:slot:1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStorePutFirstWriterWins(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	stored, err := store.Put(ctx, "appt:p1:slot:1", "tok-a", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "tok-a", stored)

	// A racing writer must end up holding the stored token, not its own.
	stored, err = store.Put(ctx, "appt:p1:slot:1", "tok-b", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "tok-a", stored)

	token, err := store.Get(ctx, "appt:p1:slot:1")
	require.NoError(t, err)
	assert.Equal(t, "tok-a", token)
}

func TestRedisStorePutReplacesExpired(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "appt:p1:slot:1", "tok-a", time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	stored, err := store.Put(ctx, "appt:p1:slot:1", "tok-b", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "tok-b", stored)
}
