package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	pending := PendingSignup{Name: "Priya", Phone: "9000000001", OTPHash: "$2a$10$hash"}
	require.NoError(t, store.Put(ctx, "priya@example.com", pending))

	got, ok, err := store.Get(ctx, "priya@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pending, got)

	require.NoError(t, store.Delete(ctx, "priya@example.com"))
	_, ok, err = store.Get(ctx, "priya@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryStore()
	_, ok, err := store.Get(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", PendingSignup{OTPHash: "first"}))
	require.NoError(t, store.Put(ctx, "a@example.com", PendingSignup{OTPHash: "second"}))

	got, ok, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", got.OTPHash)
}
