package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/catalogdb/blobstore"
)

// ErrMalformedReassignment is returned when a reassignment line has an
// identifier that is not an unsigned 64-bit integer.
var ErrMalformedReassignment = errors.New("source: malformed reassignment")

const maxReassignmentLine = 1 << 20

// Reassignments maps the identifier of a withdrawn record to the name of the
// user it is credited to.
type Reassignments map[uint64]string

// Lookup returns the user credited for gid.
func (r Reassignments) Lookup(gid uint64) (string, bool) {
	name, ok := r[gid]
	return name, ok
}

// ParseReassignments reads newline-separated "identifier:name" lines. The
// line is split at its first colon and the remainder is the name verbatim.
// Lines without a colon are skipped. Later lines win for repeated ids.
func ParseReassignments(r io.Reader) (Reassignments, error) {
	out := make(Reassignments)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxReassignmentLine)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		id, name, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		gid, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedReassignment, line, id)
		}
		out[gid] = name
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadReassignments reads the named reassignment file from store. The file
// may be compressed like any input file.
func LoadReassignments(ctx context.Context, store blobstore.BlobStore, name string) (Reassignments, error) {
	comp, err := DetectCompression(name)
	if err != nil {
		return nil, err
	}
	raw, err := open(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("open reassignments %q: %w", name, err)
	}
	defer func() { _ = raw.Close() }()

	r, err := comp.NewReader(raw)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	re, err := ParseReassignments(r)
	if err != nil {
		return nil, fmt.Errorf("reassignments %q: %w", name, err)
	}
	return re, nil
}
