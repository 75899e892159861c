package catalogdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/catalogdb/blobstore"
	"github.com/hupe1980/catalogdb/testutil"
)

// randomCatalog fills a store with files bulk files of perFile records each,
// followed by single files overriding every tenth record.
func randomCatalog(tb testing.TB, seed int64, files, perFile int) *blobstore.MemoryStore {
	tb.Helper()
	rng := testutil.NewRNG(seed)
	store := blobstore.NewMemoryStore()
	cfg := testutil.CatalogConfig{Records: perFile, Disowned: 0.05}

	for i := 0; i < files; i++ {
		recs := rng.Records(cfg, uint64(i*perFile+1)) //nolint:gosec // small test values
		data, err := testutil.BulkJSON(recs)
		require.NoError(tb, err)
		store.Put(fmt.Sprintf("bulk/part-%04d.json", i), data)
	}

	singles := rng.Records(testutil.CatalogConfig{Records: files * perFile / 10}, 1)
	for i, rec := range singles {
		rec["gid"] = uint64(i*10 + 1) //nolint:gosec // small test values
		data, err := testutil.SingleJSON(rec)
		require.NoError(tb, err)
		store.Put(fmt.Sprintf("single/%08d.json", i*10+1), data)
	}
	return store
}

func TestBuild_RandomCatalog(t *testing.T) {
	store := randomCatalog(t, 4711, 8, 250)

	seq, err := Build(context.Background(), input(store), WithWorkers(1))
	require.NoError(t, err)
	par, err := Build(context.Background(), input(store), WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, 2000, seq.Len())
	assert.Equal(t, seq.Len(), par.Len())
	assert.Equal(t, seq.UserCount(), par.UserCount())
	assert.Equal(t, seq.TagCount(), par.TagCount())

	a, err := seq.Fingerprint()
	require.NoError(t, err)
	b, err := par.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	for gid := range seq.All() {
		assert.Equal(t, gid%10 == 1 && gid <= 2000, seq.FromSingle(gid), "gid %d", gid)
	}
}

func BenchmarkBuild(b *testing.B) {
	store := randomCatalog(b, 42, 16, 1000)

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Build(context.Background(), input(store), WithWorkers(workers)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
