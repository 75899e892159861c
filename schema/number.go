package schema

import (
	"bytes"
	"fmt"
	"strconv"
)

// Number is the set of numeric types a flexible field can decode into.
type Number interface {
	uint32 | uint64 | float64
}

// Flex is a required number encoded either as a JSON number or as a JSON
// string holding the number. Both forms decode to the same value.
type Flex[T Number] struct {
	Value T
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flex[T]) UnmarshalJSON(data []byte) error {
	v, null, err := parseFlex[T](data)
	if err != nil {
		return err
	}
	if null {
		return ErrUnexpectedNull
	}
	f.Value, f.Set = v, true
	return nil
}

// Nullable is an optional number: absent, null, a JSON number or a numeric
// string.
type Nullable[T Number] struct {
	Value T
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	v, null, err := parseFlex[T](data)
	if err != nil {
		return err
	}
	if null {
		*n = Nullable[T]{}
		return nil
	}
	n.Value, n.Valid = v, true
	return nil
}

// Get returns the value and whether it is present.
func (n Nullable[T]) Get() (T, bool) {
	return n.Value, n.Valid
}

func parseFlex[T Number](data []byte) (value T, null bool, err error) {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return value, true, nil
	}

	s := string(raw)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		unquoted, uerr := strconv.Unquote(s)
		if uerr != nil {
			return value, false, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
		}
		s = unquoted
	}

	value, err = parseNumber[T](s)
	if err != nil {
		return value, false, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return value, false, nil
}

func parseNumber[T Number](s string) (T, error) {
	var v T
	switch p := any(&v).(type) {
	case *uint32:
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return v, err
		}
		*p = uint32(n)
	case *uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return v, err
		}
		*p = n
	case *float64:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return v, err
		}
		*p = n
	}
	return v, nil
}
