package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/catalogdb/codec"
	"github.com/hupe1980/catalogdb/schema"
)

func TestRecords_Valid(t *testing.T) {
	rng := NewRNG(4711)
	recs := rng.Records(CatalogConfig{Records: 50, Disowned: 0.2}, 1000)
	require.Len(t, recs, 50)

	data, err := BulkJSON(recs)
	require.NoError(t, err)

	var raws []schema.RawRecord
	require.NoError(t, codec.JSON{}.Decode(bytes.NewReader(data), &raws))
	require.Len(t, raws, 50)
	for i := range raws {
		require.NoError(t, raws[i].Validate())
		assert.Equal(t, uint64(1000+i), *raws[i].GID)
	}
}

func TestRecords_Deterministic(t *testing.T) {
	a, err := BulkJSON(NewRNG(1).Records(CatalogConfig{Records: 20}, 1))
	require.NoError(t, err)
	b, err := BulkJSON(NewRNG(1).Records(CatalogConfig{Records: 20}, 1))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	rng := NewRNG(1)
	first := rng.Intn(1 << 30)
	rng.Reset()
	assert.Equal(t, first, rng.Intn(1<<30))
	assert.Equal(t, int64(1), rng.Seed())
}

func TestZipf_Skewed(t *testing.T) {
	rng := NewRNG(4711)
	counts := make([]int, 10)
	for i := 0; i < 2000; i++ {
		k := rng.Zipf(10, 1.5)
		require.GreaterOrEqual(t, k, 0)
		require.Less(t, k, 10)
		counts[k]++
	}
	assert.Greater(t, counts[0], counts[9])
	assert.Zero(t, rng.Zipf(1, 1.5))
}
