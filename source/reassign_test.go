package source

import (
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/catalogdb/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReassignments(t *testing.T) {
	input := strings.Join([]string{
		"100:alice",
		"",
		"no colon here",
		"101:bob:with:colons",
		"102:",
		"103:carol\r",
		"100:alice2",
	}, "\n")

	got, err := ParseReassignments(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Reassignments{
		100: "alice2",
		101: "bob:with:colons",
		102: "",
		103: "carol",
	}, got)

	name, ok := got.Lookup(101)
	assert.True(t, ok)
	assert.Equal(t, "bob:with:colons", name)
	_, ok = got.Lookup(999)
	assert.False(t, ok)
}

func TestParseReassignments_BadID(t *testing.T) {
	_, err := ParseReassignments(strings.NewReader("100:alice\nabc:bob\n"))
	require.ErrorIs(t, err, ErrMalformedReassignment)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadReassignments(t *testing.T) {
	store := blobstore.NewMemoryStore()
	store.Put("disowned.txt.zst", compress(t, CompressionZstd, []byte("5:eve\n6:mallory\n")))

	got, err := LoadReassignments(context.Background(), store, "disowned.txt.zst")
	require.NoError(t, err)
	assert.Equal(t, Reassignments{5: "eve", 6: "mallory"}, got)

	_, err = LoadReassignments(context.Background(), store, "missing.txt")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
