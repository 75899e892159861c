// Package catalogdb builds a compact, immutable in-memory catalog from
// JSON record dumps.
//
// Records arrive from two collections that share one identifier space: bulk
// files holding arrays of records and single files holding one record each.
// Every record is transformed into an arena-backed representation: strings
// go into one contiguous byte arena, tags and transfer descriptors into typed
// slabs, and uploader names and tag values through deduplicating
// dictionaries. Records are keyed by identifier with last-write-wins, and
// single files are read after bulk files so their versions prevail.
//
// # Quick Start
//
//	store := blobstore.NewOSStore("./dump")
//	st, err := catalogdb.Build(ctx, catalogdb.Input{
//	    Bulk:   source.Collection{Store: store, Prefix: "bulk/"},
//	    Single: source.Collection{Store: store, Prefix: "single/"},
//	}, catalogdb.WithWorkers(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	e, err := st.Get(2716581)
//	fmt.Println(e.Title, e.Uploader, e.Tags)
//
// # Withdrawn Uploads
//
// Records whose uploader is "(Disowned)" are credited through a reassignment
// table loaded with source.LoadReassignments. Without an entry the record has
// no uploader.
//
// # Concurrency
//
// Input files may be decoded in parallel (WithWorkers), but records are
// transformed and inserted on a single goroutine in file order, so the result
// is identical to a sequential build. A finished Store is read-only and safe
// for concurrent use.
//
// # Key Features
//
//   - Inputs on local disk, S3 or MinIO via blobstore
//   - Transparent zstd, gzip, s2 and lz4 decompression
//   - Memory and read-throughput limits via resource.Controller
//   - Structured logging, metrics and a memory report
package catalogdb
