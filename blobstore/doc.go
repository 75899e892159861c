// Package blobstore provides read access to the input files of a catalog
// build, independent of where they live.
//
// BlobStore is the interface for listing and opening data blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: any afero file system, the OS file system via NewOSStore
//   - MemoryStore: in-memory blobs for tests
//   - s3.Store: Amazon S3 with range reads and parallel downloads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Stores that can fetch a whole blob faster than one sequential stream may
// also implement Downloader.
package blobstore
