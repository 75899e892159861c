package dict

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Insert(t *testing.T) {
	t.Run("repeats return the same id", func(t *testing.T) {
		b := New[string](0)
		first := b.Insert("alice")
		assert.Equal(t, first, b.Insert("alice"))
		assert.Equal(t, 1, b.Len())
	})

	t.Run("distinct values get distinct sequential ids", func(t *testing.T) {
		b := New[string](4)
		assert.Equal(t, uint32(0), b.Insert("a"))
		assert.Equal(t, uint32(1), b.Insert("b"))
		assert.Equal(t, uint32(0), b.Insert("a"))
		assert.Equal(t, uint32(2), b.Insert("c"))
		assert.Equal(t, 3, b.Len())
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var b Builder[int]
		assert.Equal(t, uint32(0), b.Insert(42))
		id, ok := b.Lookup(42)
		assert.True(t, ok)
		assert.Equal(t, uint32(0), id)
		_, ok = b.Lookup(7)
		assert.False(t, ok)
	})
}

func TestBuilder_Build(t *testing.T) {
	b := New[string](0)

	ids := make(map[string]uint32)
	for i := 0; i < 500; i++ {
		v := fmt.Sprintf("tag-%d", i%173)
		ids[v] = b.Insert(v)
	}

	out := b.Build()
	require.Len(t, out, len(ids))
	for v, id := range ids {
		assert.Equal(t, v, out[id])
	}
}

func TestBuilder_InsertAfterBuild(t *testing.T) {
	b := New[string](0)
	b.Insert("x")
	_ = b.Build()

	assert.Panics(t, func() { b.Insert("y") })
}
