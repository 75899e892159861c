package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	recordFields  = fieldNames(reflect.TypeOf(RawRecord{}))
	torrentFields = fieldNames(reflect.TypeOf(RawTorrent{}))
)

// fieldNames returns the JSON keys declared by the struct tags of t.
func fieldNames(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			names[name] = struct{}{}
		}
	}
	return names
}

// UnmarshalJSON implements json.Unmarshaler. Keys must match the field tags
// exactly and may appear at most once.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	seen, err := scanKeys(data, recordFields)
	if err != nil {
		return err
	}
	type plain RawRecord
	var p plain
	if err := decodeStrict(data, &p); err != nil {
		return err
	}
	*r = RawRecord(p)
	_, r.TitleJPN.Set = seen["title_jpn"]
	return nil
}

// UnmarshalJSON implements json.Unmarshaler with the same key rules as
// RawRecord.
func (t *RawTorrent) UnmarshalJSON(data []byte) error {
	if _, err := scanKeys(data, torrentFields); err != nil {
		return err
	}
	type plain RawTorrent
	var p plain
	if err := decodeStrict(data, &p); err != nil {
		return err
	}
	*t = RawTorrent(p)
	return nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// scanKeys walks the top-level keys of the object in data and returns them.
// Unknown and repeated keys are errors.
func scanKeys(data []byte, allowed map[string]struct{}) (map[string]struct{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, ErrUnexpectedNull
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	seen := make(map[string]struct{}, len(allowed))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		if _, ok := allowed[key]; !ok {
			return nil, &FieldError{Field: key, Err: ErrUnknownField}
		}
		if _, dup := seen[key]; dup {
			return nil, &FieldError{Field: key, Err: ErrDuplicateField}
		}
		seen[key] = struct{}{}
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return seen, nil
}

// skipValue consumes one complete value.
func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch tok {
		case json.Delim('{'), json.Delim('['):
			depth++
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
		if depth == 0 {
			return nil
		}
	}
}
