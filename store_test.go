package catalogdb

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/catalogdb/blobstore"
	"github.com/hupe1980/catalogdb/internal/arena"
	"github.com/hupe1980/catalogdb/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSmall(t *testing.T) *Store {
	t.Helper()
	store := blobstore.NewMemoryStore()
	putBulk(t, store, "bulk/a.json",
		fixture{GID: 3, Title: "three", Uploader: "alice", Tags: []string{"artist:bob"}, Torrents: 2},
		fixture{GID: 1, Title: "one", Uploader: "bob", Tags: []string{"artist:bob", "misc"}},
	)
	st, err := Build(context.Background(), input(store))
	require.NoError(t, err)
	return st
}

func TestStore_Lookups(t *testing.T) {
	st := buildSmall(t)

	rec, ok := st.Record(3)
	require.True(t, ok)

	title, err := st.String(rec.Title)
	require.NoError(t, err)
	assert.Equal(t, "three", title)

	jpn, err := st.String(rec.TitleJPN)
	require.NoError(t, err)
	assert.Empty(t, jpn)

	name, ok, err := st.Uploader(rec)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	torrents, err := st.Torrents(rec)
	require.NoError(t, err)
	require.Len(t, torrents, 2)
	hash, err := st.String(torrents[1].Hash)
	require.NoError(t, err)
	assert.Equal(t, "hash-three", hash)

	// Users are numbered in first-seen order.
	u0, err := st.UserName(0)
	require.NoError(t, err)
	assert.Equal(t, "alice", u0)
	_, err = st.UserName(2)
	require.ErrorIs(t, err, arena.ErrOutOfBounds)
	_, err = st.TagValue(99)
	require.ErrorIs(t, err, arena.ErrOutOfBounds)
}

func TestStore_ForeignHandles(t *testing.T) {
	a := buildSmall(t)
	b := buildSmall(t)

	rec, ok := a.Record(1)
	require.True(t, ok)

	_, err := b.String(rec.Title)
	require.ErrorIs(t, err, arena.ErrArenaMismatch)
	_, err = b.Tags(rec)
	require.ErrorIs(t, err, arena.ErrArenaMismatch)
}

func TestStore_ConcurrentReaders(t *testing.T) {
	st := buildSmall(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gid, rec := range st.All() {
				e, err := st.Get(gid)
				assert.NoError(t, err)
				assert.Equal(t, rec.GID, e.GID)
			}
		}()
	}
	wg.Wait()
}

func TestEntryTag_String(t *testing.T) {
	assert.Equal(t, "artist:bob", EntryTag{Namespace: model.NamespaceArtist, Value: "bob"}.String())
	assert.Equal(t, "misc", EntryTag{Namespace: model.NamespaceNone, Value: "misc"}.String())
}

func TestStore_MemoryReport(t *testing.T) {
	st := buildSmall(t)
	report := st.MemoryReport()

	records, ok := report.Component("records")
	require.True(t, ok)
	assert.Equal(t, 2, records.Entries)
	assert.Positive(t, records.Bytes)

	users, ok := report.Component("users")
	require.True(t, ok)
	assert.Equal(t, 2, users.Entries)

	tags, ok := report.Component("tags")
	require.True(t, ok)
	assert.Equal(t, 2, tags.Entries)

	arenaBytes, ok := report.Component("byte arena")
	require.True(t, ok)
	assert.Equal(t, uint64(arenaBytes.Entries), arenaBytes.Bytes, "finalized arena has no spare capacity")

	var total uint64
	for _, c := range report.Components {
		total += c.Bytes
	}
	assert.Equal(t, total, report.Total())

	out := report.String()
	for _, name := range []string{"records", "users", "tags", "byte arena", "torrent arena", "tag arena", "provenance"} {
		assert.Contains(t, strings.ToLower(out), name)
	}
}
