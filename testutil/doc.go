// Package testutil generates synthetic catalog input for tests and
// benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Records
//
//	rng := testutil.NewRNG(seed)
//	recs := rng.Records(testutil.CatalogConfig{Records: 1000}, 1)
//	data, err := testutil.BulkJSON(recs)
//
// Uploaders and tags follow a Zipf distribution, so a few values dominate
// the way they do in real catalogs.
package testutil
