package arena

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/hupe1980/catalogdb/internal/conv"
)

// StringHandle references a string stored in a Bytes arena.
//
// The zero StringHandle is never issued by an arena and is used to mark an
// absent optional string.
type StringHandle struct {
	off   uint64
	n     uint32
	arena uint32
}

// IsZero reports whether h is the zero (absent) handle.
func (h StringHandle) IsZero() bool {
	return h.arena == 0
}

// Offset returns the byte offset of the string within its arena.
func (h StringHandle) Offset() uint64 { return h.off }

// Len returns the length of the string in bytes.
func (h StringHandle) Len() int { return int(h.n) }

// String returns a debug representation of the handle.
func (h StringHandle) String() string {
	if h.IsZero() {
		return "Str(nil)"
	}
	return fmt.Sprintf("Str(%d:%d+%d)", h.arena, h.off, h.n)
}

// Bytes is an append-only pool of UTF-8 bytes.
type Bytes struct {
	id      uint32
	initial int
	buf     []byte
	res     reservation
}

// NewBytes creates an empty byte arena.
func NewBytes(opts ...Option) *Bytes {
	c := newConfig(opts)
	return &Bytes{
		id:      nextIdentity(),
		initial: c.capacity,
		res:     reservation{acquirer: c.acquirer},
	}
}

// Add appends s and returns a handle covering exactly the appended bytes.
// Previously issued handles are never invalidated.
func (a *Bytes) Add(s string) (StringHandle, error) {
	n, err := conv.IntToUint32(len(s))
	if err != nil {
		return StringHandle{}, fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}
	if err := a.ensure(len(s)); err != nil {
		return StringHandle{}, err
	}
	off := uint64(len(a.buf))
	a.buf = append(a.buf, s...)
	return StringHandle{off: off, n: n, arena: a.id}, nil
}

func (a *Bytes) ensure(extra int) error {
	need := len(a.buf) + extra
	if need <= cap(a.buf) {
		return nil
	}
	newCap := nextCapacity(cap(a.buf), need, a.initial)
	if err := a.res.grow(int64(newCap - cap(a.buf))); err != nil {
		return err
	}
	grown := make([]byte, len(a.buf), newCap)
	copy(grown, a.buf)
	a.buf = grown
	return nil
}

// Get resolves h to its string. The returned string shares memory with the
// arena and stays valid for the arena's lifetime.
func (a *Bytes) Get(h StringHandle) (string, error) {
	if h.arena != a.id {
		return "", fmt.Errorf("%w: handle %s, arena %d", ErrArenaMismatch, h, a.id)
	}
	end := h.off + uint64(h.n)
	if end > uint64(len(a.buf)) {
		return "", fmt.Errorf("%w: handle %s, size %d", ErrOutOfBounds, h, len(a.buf))
	}
	b := a.buf[h.off:end]
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: handle %s", ErrInvalidEncoding, h)
	}
	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(&b[0], len(b)), nil //nolint:gosec // bytes are never mutated after Add
}

// Len returns the number of bytes stored.
func (a *Bytes) Len() int { return len(a.buf) }

// Finalize shrinks the backing allocation to the current contents.
// Adding afterwards is legal but reintroduces spare capacity.
func (a *Bytes) Finalize() {
	spare := cap(a.buf) - len(a.buf)
	if spare == 0 {
		return
	}
	exact := make([]byte, len(a.buf))
	copy(exact, a.buf)
	a.buf = exact
	a.res.shrink(int64(spare))
}

// Stats returns memory usage of the arena.
func (a *Bytes) Stats() Stats {
	return Stats{
		Len:           len(a.buf),
		Cap:           cap(a.buf),
		BytesReserved: int64(cap(a.buf)),
		BytesUsed:     int64(len(a.buf)),
	}
}
