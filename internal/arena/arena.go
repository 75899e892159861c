// Package arena provides append-only pools for building large immutable stores.
//
// # Memory Management
//
// Both pools grow by doubling a single contiguous backing slice. Bytes and
// elements are never moved within the logical address space, so a handle
// issued by Add or AddSlice stays valid for the lifetime of the arena. Growth
// may reserve memory from an optional MemoryAcquirer; Finalize trims the
// backing slice to its exact size and returns the spare reservation.
//
// # Concurrency Model
//
// Arenas are single-writer. Any number of goroutines may read concurrently
// once writes have stopped.
package arena

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(ctx context.Context, amount int64) error
	ReleaseMemory(amount int64)
}

var (
	// ErrArenaMismatch is returned when a handle is resolved against an arena
	// that did not issue it.
	ErrArenaMismatch = errors.New("arena: handle belongs to a different arena")
	// ErrOutOfBounds is returned when a handle points past the arena contents.
	ErrOutOfBounds = errors.New("arena: handle out of bounds")
	// ErrInvalidEncoding is returned when resolved bytes are not valid UTF-8.
	ErrInvalidEncoding = errors.New("arena: invalid utf-8 encoding")
	// ErrAllocationFailed is returned when an allocation fails.
	ErrAllocationFailed = errors.New("arena: allocation failed")
)

const (
	// DefaultCapacity is the initial capacity (in elements) of a new arena.
	DefaultCapacity = 4096

	acquireTimeout = 100 * time.Millisecond
)

// identities hands out process-unique arena tags. Tag 0 is never issued and
// marks the zero handle.
var identities atomic.Uint32

func nextIdentity() uint32 {
	return identities.Add(1)
}

type config struct {
	capacity int
	acquirer MemoryAcquirer
}

// Option is a configuration option for Bytes and Slab.
type Option func(*config)

// WithMemoryAcquirer sets the memory acquirer for the arena.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(c *config) {
		c.acquirer = acquirer
	}
}

// WithCapacity sets the initial capacity, in elements.
func WithCapacity(capacity int) Option {
	return func(c *config) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

func newConfig(opts []Option) config {
	c := config{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Stats tracks arena memory usage.
type Stats struct {
	Len           int   // Elements (or bytes) in use
	Cap           int   // Elements (or bytes) allocated
	BytesReserved int64 // Capacity in bytes
	BytesUsed     int64 // Length in bytes
}

// reservation tracks memory charged against a MemoryAcquirer.
type reservation struct {
	acquirer MemoryAcquirer
	bytes    int64
}

// grow charges delta bytes. It is a no-op without an acquirer.
func (r *reservation) grow(delta int64) error {
	if r.acquirer == nil || delta <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), acquireTimeout)
	defer cancel()
	if err := r.acquirer.AcquireMemory(ctx, delta); err != nil {
		return fmt.Errorf("%w: reserve %d bytes: %w", ErrAllocationFailed, delta, err)
	}
	r.bytes += delta
	return nil
}

// shrink returns delta bytes to the acquirer.
func (r *reservation) shrink(delta int64) {
	if r.acquirer == nil || delta <= 0 {
		return
	}
	if delta > r.bytes {
		delta = r.bytes
	}
	r.acquirer.ReleaseMemory(delta)
	r.bytes -= delta
}

// nextCapacity returns the capacity to grow to so that need elements fit.
func nextCapacity(current, need, initial int) int {
	c := current * 2
	if c < initial {
		c = initial
	}
	if c < need {
		c = need
	}
	return c
}
