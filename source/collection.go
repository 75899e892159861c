package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/catalogdb/blobstore"
	"github.com/hupe1980/catalogdb/codec"
	"github.com/hupe1980/catalogdb/resource"
	"github.com/hupe1980/catalogdb/schema"
)

// Layout is the shape of the files in a collection.
type Layout uint8

const (
	// LayoutBulk files hold a JSON array of records.
	LayoutBulk Layout = iota
	// LayoutSingle files hold exactly one JSON record.
	LayoutSingle
)

// String returns "bulk" or "single".
func (l Layout) String() string {
	switch l {
	case LayoutBulk:
		return "bulk"
	case LayoutSingle:
		return "single"
	default:
		return fmt.Sprintf("Layout(%d)", l)
	}
}

// Collection is a set of input files below Prefix in Store.
//
// A Collection with a nil Store is empty.
type Collection struct {
	Store  blobstore.BlobStore
	Prefix string
	Layout Layout
}

// Files returns the names of all files of the collection in lexicographic
// order.
func (c Collection) Files(ctx context.Context) ([]string, error) {
	if c.Store == nil {
		return nil, nil
	}
	names, err := c.Store.List(ctx, c.Prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s collection %q: %w", c.Layout, c.Prefix, err)
	}
	return names, nil
}

// File is one decoded and validated input file.
type File struct {
	Name    string
	Layout  Layout
	Records []schema.RawRecord
	// Bytes is the number of bytes read from the store, before decompression.
	Bytes int64
}

// RecordError reports a record of a file that failed validation.
type RecordError struct {
	Index  int
	GID    uint64
	HasGID bool
	Err    error
}

func (e *RecordError) Error() string {
	if e.HasGID {
		return fmt.Sprintf("record %d (gid %d): %v", e.Index, e.GID, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Decode reads, decompresses, decodes and validates the named file. rc may be
// nil; when set, reads are throttled by its IO limit.
func (c Collection) Decode(ctx context.Context, name string, cd codec.Codec, rc *resource.Controller) (*File, error) {
	if cd == nil {
		cd = codec.Default
	}
	comp, err := DetectCompression(name)
	if err != nil {
		return nil, err
	}

	raw, err := open(ctx, c.Store, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = raw.Close() }()

	counted := &countingReader{r: resource.NewRateLimitedReader(ctx, raw, rc)}
	r, err := comp.NewReader(counted)
	if err != nil {
		return nil, fmt.Errorf("open %s stream: %w", comp, err)
	}
	defer func() { _ = r.Close() }()

	f := &File{Name: name, Layout: c.Layout}
	switch c.Layout {
	case LayoutBulk:
		if err := cd.Decode(r, &f.Records); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
	case LayoutSingle:
		f.Records = make([]schema.RawRecord, 1)
		if err := cd.Decode(r, &f.Records[0]); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown layout %s", c.Layout)
	}
	f.Bytes = counted.n

	for i := range f.Records {
		rec := &f.Records[i]
		if err := rec.Validate(); err != nil {
			re := &RecordError{Index: i, Err: err}
			if rec.GID != nil {
				re.GID, re.HasGID = *rec.GID, true
			}
			return nil, re
		}
	}
	return f, nil
}

// open returns a reader over the whole blob, using a parallel download when
// the store supports it.
func open(ctx context.Context, store blobstore.BlobStore, name string) (io.ReadCloser, error) {
	if store == nil {
		return nil, errors.New("source: collection has no store")
	}
	if d, ok := store.(blobstore.Downloader); ok {
		data, err := d.Download(ctx, name)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	r, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		_ = blob.Close()
		return nil, err
	}
	return &blobReader{ReadCloser: r, blob: blob}, nil
}

type blobReader struct {
	io.ReadCloser
	blob blobstore.Blob
}

func (b *blobReader) Close() error {
	return errors.Join(b.ReadCloser.Close(), b.blob.Close())
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
