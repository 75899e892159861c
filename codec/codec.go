// Package codec centralizes decoding of ingested input files.
//
// All codecs are strict: unknown object fields and trailing data after the
// top-level value are errors.
package codec

import (
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData is returned when input continues after the decoded value.
var ErrTrailingData = errors.New("codec: trailing data after top-level value")

// Codec decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Decode reads exactly one JSON value from r into v, rejecting unknown
	// fields.
	Decode(r io.Reader, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Default is the default codec used by the library.
var Default Codec = GoJSON{}

// expectEOF takes the token read after the decoded value and fails unless the
// input ended there.
func expectEOF(tok any, err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", ErrTrailingData, err)
	default:
		return fmt.Errorf("%w: %v", ErrTrailingData, tok)
	}
}
