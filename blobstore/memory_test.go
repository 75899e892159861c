package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("0123456789")
	store.Put("single/b", data)
	store.Put("single/a", []byte("a"))
	store.Put("bulk/x", []byte("x"))
	data[0] = 'X'

	names, err := store.List(ctx, "single/")
	require.NoError(t, err)
	assert.Equal(t, []string{"single/a", "single/b"}, names)

	blob, err := store.Open(ctx, "single/b")
	require.NoError(t, err)
	r, err := blob.ReadRange(ctx, 0, 4)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(got))

	all, err := store.Download(ctx, "single/b")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(all))

	_, err = store.Open(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.Download(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

var _ Downloader = (*MemoryStore)(nil)
