package catalogdb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/catalogdb/source"
)

var (
	// ErrNoSources is returned when neither collection names a store.
	ErrNoSources = errors.New("catalogdb: no input collections configured")
	// ErrFinished is returned when a Builder is used after Finish.
	ErrFinished = errors.New("catalogdb: builder already finished")
	// ErrNotFound is returned when a store holds no record for an identifier.
	ErrNotFound = errors.New("catalogdb: record not found")
)

// SourceError locates a build failure in the input.
//
// Index is the position of the record within its file and GID its
// identifier; both are only meaningful when the failure concerns a single
// record.
type SourceError struct {
	Origin  source.Layout
	File    string
	Index   int
	GID     uint64
	HasGID  bool
	Err     error
	hasItem bool
}

func (e *SourceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Origin)
	if e.File != "" {
		fmt.Fprintf(&b, " file %q", e.File)
	}
	if e.hasItem {
		fmt.Fprintf(&b, " record %d", e.Index)
	}
	if e.HasGID {
		fmt.Fprintf(&b, " (gid %d)", e.GID)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *SourceError) Unwrap() error { return e.Err }

// fileError wraps err with its file, lifting record details out of a
// source.RecordError.
func fileError(origin source.Layout, file string, err error) error {
	se := &SourceError{Origin: origin, File: file, Err: err}
	var re *source.RecordError
	if errors.As(err, &re) {
		se.Index, se.hasItem = re.Index, true
		se.GID, se.HasGID = re.GID, re.HasGID
		se.Err = re.Err
	}
	return se
}

// recordError wraps err with the position of the record that caused it.
func recordError(origin source.Layout, file string, index int, gid uint64, hasGID bool, err error) error {
	return &SourceError{
		Origin:  origin,
		File:    file,
		Index:   index,
		GID:     gid,
		HasGID:  hasGID,
		Err:     err,
		hasItem: true,
	}
}
