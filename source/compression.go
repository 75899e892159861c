package source

import (
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrUnsupportedCompression is returned for files compressed with a format
// the reader cannot decode.
var ErrUnsupportedCompression = errors.New("source: unsupported compression")

// Compression identifies the compression of an input file.
type Compression uint8

// Supported compressions.
const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionGzip
	CompressionS2
	CompressionLZ4
)

var compressionNames = [...]string{
	CompressionNone: "none",
	CompressionZstd: "zstd",
	CompressionGzip: "gzip",
	CompressionS2:   "s2",
	CompressionLZ4:  "lz4",
}

// String returns the name of the compression.
func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("Compression(%d)", c)
}

// DetectCompression returns the compression implied by the extension of
// name. Unknown extensions are treated as uncompressed, well-known archive
// formats without a decoder yield ErrUnsupportedCompression.
func DetectCompression(name string) (Compression, error) {
	switch ext := path.Ext(name); ext {
	case ".zst", ".zstd":
		return CompressionZstd, nil
	case ".gz":
		return CompressionGzip, nil
	case ".s2", ".sz":
		return CompressionS2, nil
	case ".lz4":
		return CompressionLZ4, nil
	case ".bz2", ".xz", ".br", ".zip", ".7z":
		return CompressionNone, fmt.Errorf("%w: %s", ErrUnsupportedCompression, ext)
	default:
		return CompressionNone, nil
	}
}

// NewReader wraps r with a decompressor. Closing the returned reader does
// not close r.
func (c Compression) NewReader(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionS2:
		return io.NopCloser(s2.NewReader(r)), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
}
