// Package source reads the input collections of a catalog build.
//
// A Collection is a prefix in a blobstore.BlobStore whose files share one
// Layout: a bulk file holds a JSON array of records, a single file holds
// exactly one record. Files are listed in lexicographic order and may be
// compressed; the compression is chosen by file extension (.zst, .gz, .s2,
// .lz4).
//
// The package also parses the reassignment table that maps withdrawn
// records to the user that should be credited for them.
package source
