// Package dict assigns dense, insertion-ordered ids to distinct values.
package dict

import (
	"cmp"
	"slices"
)

// Builder maps each distinct value to a sequential id starting at 0.
//
// The zero value is ready to use. A Builder is consumed by Build.
type Builder[T comparable] struct {
	ids   map[T]uint32
	next  uint32
	built bool
}

// New returns a Builder sized for capacity distinct values.
func New[T comparable](capacity int) *Builder[T] {
	return &Builder[T]{ids: make(map[T]uint32, capacity)}
}

// Insert returns the id of v, assigning the next sequential id if v has not
// been seen before. Ids are never reused.
func (b *Builder[T]) Insert(v T) uint32 {
	if b.built {
		panic("dict: Insert after Build")
	}
	if id, ok := b.ids[v]; ok {
		return id
	}
	if b.ids == nil {
		b.ids = make(map[T]uint32)
	}
	if b.next == ^uint32(0) {
		panic("dict: id space exhausted")
	}
	id := b.next
	b.ids[v] = id
	b.next++
	return id
}

// Lookup returns the id of v without inserting it.
func (b *Builder[T]) Lookup(v T) (uint32, bool) {
	id, ok := b.ids[v]
	return id, ok
}

// Len returns the number of distinct values inserted.
func (b *Builder[T]) Len() int {
	return int(b.next)
}

// Build returns the values ordered by id, so that Build()[id] is the value
// that was assigned id. The builder must not be used afterwards.
func (b *Builder[T]) Build() []T {
	type entry struct {
		id uint32
		v  T
	}
	entries := make([]entry, 0, len(b.ids))
	for v, id := range b.ids {
		entries = append(entries, entry{id: id, v: v})
	}
	// Map iteration order is random.
	slices.SortStableFunc(entries, func(x, y entry) int {
		return cmp.Compare(x.id, y.id)
	})

	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.v
	}

	b.ids = nil
	b.built = true
	return out
}
