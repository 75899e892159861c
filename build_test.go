package catalogdb

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/hupe1980/catalogdb/blobstore"
	"github.com/hupe1980/catalogdb/internal/arena"
	"github.com/hupe1980/catalogdb/model"
	"github.com/hupe1980/catalogdb/resource"
	"github.com/hupe1980/catalogdb/schema"
	"github.com/hupe1980/catalogdb/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(store blobstore.BlobStore) Input {
	return Input{
		Bulk:   source.Collection{Store: store, Prefix: "bulk/"},
		Single: source.Collection{Store: store, Prefix: "single/"},
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	store := blobstore.NewMemoryStore()
	putBulk(t, store, "bulk/part-000.json",
		fixture{GID: 100, Title: "first", Uploader: "alice", Tags: []string{"character:Alice", "language:english"}, Torrents: 1},
		fixture{GID: 101, Title: "second", Uploader: "bob", Tags: []string{"Alice", "female:glasses"}},
	)

	st, err := Build(context.Background(), input(store))
	require.NoError(t, err)

	assert.Equal(t, 2, st.Len())
	assert.Equal(t, 2, st.UserCount())
	assert.Equal(t, 3, st.TagCount(), "Alice, english, glasses")

	e, err := st.Get(100)
	require.NoError(t, err)
	assert.Equal(t, "first", e.Title)
	assert.Equal(t, "alice", e.Uploader)
	assert.True(t, e.HasUploader)
	assert.Equal(t, "th/first.jpg", e.Thumb)
	assert.Equal(t, "https://ehgt.org/th/first.jpg", e.ThumbURL())
	assert.Equal(t, model.CategoryMisc, e.Category)
	assert.Equal(t, uint32(10), e.FileCount)
	assert.Equal(t, 4.21, e.Rating)
	assert.Equal(t, model.SomeGID(100), e.FirstGID)
	assert.False(t, e.CurrentGID.Valid)
	assert.Empty(t, e.TitleJPN)
	assert.Equal(t, []EntryTag{
		{Namespace: model.NamespaceCharacter, Value: "Alice"},
		{Namespace: model.NamespaceLanguage, Value: "english"},
	}, e.Tags)
	require.Len(t, e.Torrents, 1)
	assert.Equal(t, EntryTorrent{Added: 1600000000, FileSize: 1000, TorrentSize: 2000, Hash: "hash-first", Name: "first.zip"}, e.Torrents[0])

	rec, ok := st.Record(101)
	require.True(t, ok)
	tags, err := st.Tags(rec)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, model.NamespaceNone, tags[0].Namespace)
	v, err := st.TagValue(tags[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", v)

	_, err = st.Get(999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBuild_OverwritePolicy(t *testing.T) {
	store := blobstore.NewMemoryStore()
	putBulk(t, store, "bulk/a.json", fixture{GID: 1, Title: "bulk-a"}, fixture{GID: 2, Title: "bulk-a"})
	putBulk(t, store, "bulk/b.json", fixture{GID: 2, Title: "bulk-b"}, fixture{GID: 3, Title: "bulk-b"})
	putSingle(t, store, "single/3.json", fixture{GID: 3, Title: "single"})
	putSingle(t, store, "single/4.json", fixture{GID: 4, Title: "single"})

	metrics := &BasicMetricsCollector{}
	st, err := Build(context.Background(), input(store), WithMetricsCollector(metrics))
	require.NoError(t, err)

	want := map[uint64]string{1: "bulk-a", 2: "bulk-b", 3: "single", 4: "single"}
	for gid, title := range want {
		e, err := st.Get(gid)
		require.NoError(t, err)
		assert.Equal(t, title, e.Title, "gid %d", gid)
	}

	assert.False(t, st.FromSingle(2))
	assert.True(t, st.FromSingle(3))
	assert.True(t, st.FromSingle(4))

	stats := metrics.GetStats()
	assert.Equal(t, int64(4), stats.FileCount)
	assert.Equal(t, int64(6), stats.RecordCount)
	assert.Equal(t, int64(2), stats.OverwriteCount)
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Zero(t, stats.BuildErrors)

	var gids []uint64
	for gid := range st.All() {
		gids = append(gids, gid)
	}
	assert.Equal(t, []uint64{1, 2, 3, 4}, gids)
}

func TestBuild_WithdrawnUploader(t *testing.T) {
	store := blobstore.NewMemoryStore()
	putBulk(t, store, "bulk/a.json",
		fixture{GID: 10, Title: "claimed", Uploader: schema.DisownedUploader},
		fixture{GID: 11, Title: "orphan", Uploader: schema.DisownedUploader},
	)
	store.Put("disowned.txt", []byte("10:carol\n"))

	re, err := source.LoadReassignments(context.Background(), store, "disowned.txt")
	require.NoError(t, err)

	in := input(store)
	in.Reassignments = re
	st, err := Build(context.Background(), in)
	require.NoError(t, err)

	e, err := st.Get(10)
	require.NoError(t, err)
	assert.True(t, e.HasUploader)
	assert.Equal(t, "carol", e.Uploader)

	e, err = st.Get(11)
	require.NoError(t, err)
	assert.False(t, e.HasUploader)
	assert.Empty(t, e.Uploader)

	assert.Equal(t, 1, st.UserCount())
}

func TestBuild_ParallelMatchesSequential(t *testing.T) {
	store := blobstore.NewMemoryStore()
	for f := 0; f < 8; f++ {
		var fs []fixture
		for i := 0; i < 25; i++ {
			gid := uint64(f*20 + i) // overlapping ranges across files
			fs = append(fs, fixture{
				GID:      gid,
				Title:    fmt.Sprintf("file%d-rec%d", f, i),
				Uploader: fmt.Sprintf("user%d", i%7),
				Tags:     []string{fmt.Sprintf("artist:a%d", i%5), fmt.Sprintf("t%d", f)},
				Torrents: i % 3,
			})
		}
		putBulk(t, store, fmt.Sprintf("bulk/part-%03d.json", f), fs...)
	}
	for gid := uint64(0); gid < 200; gid += 17 {
		putSingle(t, store, fmt.Sprintf("single/%05d.json", gid), fixture{GID: gid, Title: "override"})
	}

	seq, err := Build(context.Background(), input(store), WithWorkers(1))
	require.NoError(t, err)

	rc := resource.NewController(resource.Config{MaxBackgroundWorkers: 3})
	par, err := Build(context.Background(), input(store), WithWorkers(4), WithResourceController(rc))
	require.NoError(t, err)

	unbounded, err := Build(context.Background(), input(store), WithWorkers(8))
	require.NoError(t, err)

	want, err := seq.Fingerprint()
	require.NoError(t, err)
	got, err := par.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	got, err = unbounded.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Equal(t, seq.Len(), par.Len())
	assert.Equal(t, seq.TagCount(), par.TagCount())
	assert.Positive(t, rc.PeakMemory())
}

func TestBuild_FingerprintDetectsChanges(t *testing.T) {
	a := blobstore.NewMemoryStore()
	putBulk(t, a, "bulk/a.json", fixture{GID: 1, Title: "x"})
	b := blobstore.NewMemoryStore()
	putBulk(t, b, "bulk/a.json", fixture{GID: 1, Title: "y"})

	sa, err := Build(context.Background(), input(a))
	require.NoError(t, err)
	sb, err := Build(context.Background(), input(b))
	require.NoError(t, err)

	fa, err := sa.Fingerprint()
	require.NoError(t, err)
	fb, err := sb.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}

func TestBuild_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no sources", func(t *testing.T) {
		_, err := Build(ctx, Input{})
		require.ErrorIs(t, err, ErrNoSources)
	})

	t.Run("unknown namespace names the record", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putBulk(t, store, "bulk/a.json",
			fixture{GID: 1, Title: "ok"},
			fixture{GID: 2, Title: "bad", Tags: []string{"bogus:Alice"}},
		)

		for _, workers := range []int{1, 4} {
			_, err := Build(ctx, input(store), WithWorkers(workers))
			require.ErrorIs(t, err, model.ErrUnknownNamespace)

			var se *SourceError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, source.LayoutBulk, se.Origin)
			assert.Equal(t, "bulk/a.json", se.File)
			assert.Equal(t, 1, se.Index)
			assert.Equal(t, uint64(2), se.GID)
			assert.Contains(t, err.Error(), `bulk file "bulk/a.json" record 1 (gid 2)`)
		}
	})

	t.Run("malformed file in parallel build", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putBulk(t, store, "bulk/a.json", fixture{GID: 1, Title: "ok"})
		store.Put("bulk/b.json", []byte(`[{"gid": 2, "unexpected": true}]`))
		putBulk(t, store, "bulk/c.json", fixture{GID: 3, Title: "ok"})

		_, err := Build(ctx, input(store), WithWorkers(3))
		var se *SourceError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "bulk/b.json", se.File)
	})

	t.Run("canceled", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putBulk(t, store, "bulk/a.json", fixture{GID: 1, Title: "ok"})

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Build(cctx, input(store))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("memory limit", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putBulk(t, store, "bulk/a.json", fixture{GID: 1, Title: "ok"})

		rc := resource.NewController(resource.Config{MemoryLimitBytes: 64})
		_, err := Build(ctx, input(store), WithResourceController(rc))
		require.ErrorIs(t, err, arena.ErrAllocationFailed)
	})
}

func TestBuild_Logging(t *testing.T) {
	store := blobstore.NewMemoryStore()
	putBulk(t, store, "bulk/a.json", fixture{GID: 1, Title: "ok"})

	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := Build(context.Background(), input(store), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"file ingested"`)
	assert.Contains(t, out, `"layout":"bulk"`)
	assert.Contains(t, out, `"msg":"build completed"`)
}
