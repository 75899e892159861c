package codec

import (
	"encoding/json"
	"io"
)

// JSON is the standard-library JSON codec.
type JSON struct{}

// Decode decodes one JSON value from r into v.
func (JSON) Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return expectEOF(dec.Token())
}

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
