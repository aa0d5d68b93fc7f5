package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateKeyIsStable(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, nil)

	first, err := m.GetOrCreateKey(context.Background(), "p1", 42)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := m.GetOrCreateKey(context.Background(), "p1", 42)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClearKeyYieldsFreshToken(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, nil)

	first, err := m.GetOrCreateKey(context.Background(), "p1", 42)
	require.NoError(t, err)

	require.NoError(t, m.ClearKey(context.Background(), "p1", 42))

	second, err := m.GetOrCreateKey(context.Background(), "p1", 42)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokensAreScopedToPair(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, nil)

	a, err := m.GetOrCreateKey(context.Background(), "p1", 1)
	require.NoError(t, err)
	b, err := m.GetOrCreateKey(context.Background(), "p1", 2)
	require.NoError(t, err)
	c, err := m.GetOrCreateKey(context.Background(), "p2", 1)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestMemoryStorePutFirstWriterWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	stored, err := store.Put(ctx, "appt:p1:slot:42", "tok-a", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "tok-a", stored)

	stored, err = store.Put(ctx, "appt:p1:slot:42", "tok-b", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "tok-a", stored)

	token, err := store.Get(ctx, "appt:p1:slot:42")
	require.NoError(t, err)
	assert.Equal(t, "tok-a", token)
}

func TestRecordKey(t *testing.T) {
	assert.Equal(t, "appt:p1:slot:42", RecordKey("p1", 42))
}
