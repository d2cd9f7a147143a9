package pebble

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()

	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTripSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(context.Background(), "guest_id", "guest_abc"))
	require.NoError(t, first.PutAll(context.Background(), map[string]string{
		"chat/order":  `["a"]`,
		"chat/active": "a",
	}))
	require.NoError(t, first.Close())

	second := openTestStore(t, path)

	got, err := second.Get(context.Background(), "guest_id")
	require.NoError(t, err)
	assert.Equal(t, "guest_abc", got)

	active, err := second.Get(context.Background(), "chat/active")
	require.NoError(t, err)
	assert.Equal(t, "a", active)
}

func TestStoreMissingKeyAndDelete(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, filepath.Join(t.TempDir(), "state"))

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Put(context.Background(), "k", "v"))
	require.NoError(t, store.Delete(context.Background(), "k"))

	_, err = store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, filepath.Join(t.TempDir(), "state"))

	assert.ErrorContains(t, store.Put(context.Background(), " ", "v"), "key is empty")
	assert.ErrorContains(t, store.PutAll(context.Background(), map[string]string{"": "v"}), "key is empty")
}
