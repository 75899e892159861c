package arena

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/catalogdb/internal/conv"
)

// Range is a half-open index range [Start, End) into a Slab.
//
// The zero Range is empty and belongs to no slab.
type Range struct {
	start uint32
	end   uint32
	arena uint32
}

// Start returns the first index of the range.
func (r Range) Start() int { return int(r.start) }

// End returns the index one past the last element of the range.
func (r Range) End() int { return int(r.end) }

// Len returns the number of elements covered by the range.
func (r Range) Len() int { return int(r.end - r.start) }

// String returns a debug representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("Range(%d:%d..%d)", r.arena, r.start, r.end)
}

// Slab is an append-only pool of fixed-size elements.
type Slab[T any] struct {
	id       uint32
	initial  int
	elemSize int64
	data     []T
	res      reservation
}

// NewSlab creates an empty slab.
func NewSlab[T any](opts ...Option) *Slab[T] {
	c := newConfig(opts)
	var zero T
	return &Slab[T]{
		id:       nextIdentity(),
		initial:  c.capacity,
		elemSize: int64(unsafe.Sizeof(zero)),
		res:      reservation{acquirer: c.acquirer},
	}
}

// AddSlice appends items as one contiguous batch and returns the range
// covering it. The items are copied; the caller may reuse the slice.
func (s *Slab[T]) AddSlice(items []T) (Range, error) {
	start, err := conv.IntToUint32(len(s.data))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}
	end, err := conv.IntToUint32(len(s.data) + len(items))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}
	if err := s.ensure(len(items)); err != nil {
		return Range{}, err
	}
	s.data = append(s.data, items...)
	return Range{start: start, end: end, arena: s.id}, nil
}

func (s *Slab[T]) ensure(extra int) error {
	need := len(s.data) + extra
	if need <= cap(s.data) {
		return nil
	}
	newCap := nextCapacity(cap(s.data), need, s.initial)
	if err := s.res.grow(int64(newCap-cap(s.data)) * s.elemSize); err != nil {
		return err
	}
	grown := make([]T, len(s.data), newCap)
	copy(grown, s.data)
	s.data = grown
	return nil
}

// GetRange returns a read-only view of the elements covered by r.
// Callers must not modify the returned slice.
func (s *Slab[T]) GetRange(r Range) ([]T, error) {
	if r.arena != s.id {
		if r.arena == 0 && r.start == r.end {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: range %s, slab %d", ErrArenaMismatch, r, s.id)
	}
	if r.start > r.end || int(r.end) > len(s.data) {
		return nil, fmt.Errorf("%w: range %s, size %d", ErrOutOfBounds, r, len(s.data))
	}
	return s.data[r.start:r.end:r.end], nil
}

// Len returns the number of elements stored.
func (s *Slab[T]) Len() int { return len(s.data) }

// Finalize shrinks the backing allocation to the current contents.
func (s *Slab[T]) Finalize() {
	spare := cap(s.data) - len(s.data)
	if spare == 0 {
		return
	}
	exact := make([]T, len(s.data))
	copy(exact, s.data)
	s.data = exact
	s.res.shrink(int64(spare) * s.elemSize)
}

// Stats returns memory usage of the slab.
func (s *Slab[T]) Stats() Stats {
	return Stats{
		Len:           len(s.data),
		Cap:           cap(s.data),
		BytesReserved: int64(cap(s.data)) * s.elemSize,
		BytesUsed:     int64(len(s.data)) * s.elemSize,
	}
}
