package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "key is empty"},
		{name: "whitespace", key: "   ", wantErr: "key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid key"},
		{name: "traversal", key: "../escape", wantErr: "invalid key"},
		{name: "deep traversal", key: "../../value", wantErr: "invalid key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), "guest_id", "guest_123"))

	got, err := store.Get(context.Background(), "guest_id")
	require.NoError(t, err)
	assert.Equal(t, "guest_123", got)

	info, err := os.Stat(filepath.Join(root, "guest_id"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(valueFileMode), info.Mode().Perm())
}

func TestStoreGetMissingKeyReportsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "chat/order")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStorePutAllWritesEveryEntry(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	entries := map[string]string{
		"chat/sessions": `{"a":{}}`,
		"chat/order":    `["a"]`,
		"chat/active":   "a",
	}

	require.NoError(t, store.PutAll(context.Background(), entries))

	for key, want := range entries {
		got, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, want, got, key)
	}
}

func TestStoreDeleteIsIdempotentWhenValueMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	require.NoError(t, store.Delete(context.Background(), "guest_id"))
	require.NoError(t, store.Delete(context.Background(), "guest_id"))
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Put(ctx, "guest_id", "value")
	assert.ErrorIs(t, err, context.Canceled)
}
