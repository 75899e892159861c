package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is a read-only view of a collection of named blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// List returns the names of all blobs starting with prefix, sorted
	// lexicographically.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
	// ReadRange returns a reader for length bytes starting at off. The range
	// is clipped to the blob size. An offset past the end yields io.EOF.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
}

// Downloader is an optional interface for stores that fetch a whole blob
// more efficiently than a single sequential read, e.g. with parallel ranged
// requests.
type Downloader interface {
	Download(ctx context.Context, name string) ([]byte, error)
}

// NewReader returns a reader over the full contents of b.
func NewReader(ctx context.Context, b Blob) (io.ReadCloser, error) {
	if b.Size() == 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return b.ReadRange(ctx, 0, b.Size())
}

// clip validates a range request against size and returns the clipped length.
func clip(size, off, length int64) (int64, error) {
	if off < 0 || off >= size {
		return 0, io.EOF
	}
	if end := off + length; end > size || end < off {
		length = size - off
	}
	return length, nil
}

func emptyReader() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(nil))
}
