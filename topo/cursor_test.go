package topo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect runs the same shape of traversal and returns the IDs it produced.
func collect(seed string, items []string) []ID {
	var ids []ID
	root := Root(seed)
	ids = append(ids, root.Next(), root.Next())
	root.Call("header", func(c *Cursor) {
		ids = append(ids, c.ID(), c.Next())
	})
	for _, item := range items {
		root.Keyed(item, func(c *Cursor) {
			ids = append(ids, c.Next())
		})
	}
	return ids
}

func TestIDsStableAcrossTraversals(t *testing.T) {
	first := collect("app", []string{"a", "b"})
	second := collect("app", []string{"a", "b"})
	assert.Equal(t, first, second)
}

func TestIDsDifferBySeed(t *testing.T) {
	assert.NotEqual(t, Root("one").ID(), Root("two").ID())
}

func TestNextIsDistinctPerSlot(t *testing.T) {
	root := Root("app")
	a := root.Next()
	b := root.Next()
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, root.ID(), a)
}

func TestRepeatedCallsWithSameKeyAreDistinct(t *testing.T) {
	root := Root("app")
	var ids []ID
	for i := 0; i < 3; i++ {
		root.Call("row", func(c *Cursor) {
			ids = append(ids, c.ID())
		})
	}
	require.Len(t, ids, 3)
	assert.NotEqual(t, ids[0], ids[1])
	assert.NotEqual(t, ids[1], ids[2])
	assert.NotEqual(t, ids[0], ids[2])
}

func TestKeyedIgnoresPosition(t *testing.T) {
	forward := collect("app", []string{"a", "b"})
	reversed := collect("app", []string{"b", "a"})

	// Items keep their IDs when their order flips.
	assert.Equal(t, forward[4], reversed[5])
	assert.Equal(t, forward[5], reversed[4])
}

func TestSiblingScopesDoNotShareSlots(t *testing.T) {
	root := Root("app")
	var left, right ID
	root.Call("left", func(c *Cursor) { left = c.Next() })
	root.Call("right", func(c *Cursor) { right = c.Next() })
	assert.NotEqual(t, left, right)
}

func TestPathAndDepth(t *testing.T) {
	root := Root("app")
	root.Call("list", func(c *Cursor) {
		assert.Equal(t, 1, c.Depth())
		c.Keyed("a", func(item *Cursor) {
			assert.Equal(t, JoinPath("app", "list", "[a]"), item.Path())
			assert.Equal(t, 2, item.Depth())
			assert.Equal(t, []string{"app/list", "app/list/[a]"}, item.Open())
		})
	})
	root.Call("list", func(c *Cursor) {
		assert.Equal(t, "app/list#1", c.Path())
	})
	assert.Empty(t, root.Open())
}

func TestScopeExitsOnPanic(t *testing.T) {
	root := Root("app")

	assert.Panics(t, func() {
		root.Call("outer", func(c *Cursor) {
			c.Call("inner", func(*Cursor) {
				panic("boom")
			})
		})
	})

	assert.Empty(t, root.Open(), "scopes must be closed after a panic")
	assert.Equal(t, "app/outer/inner", root.PanicPath())
}

func TestCallValue(t *testing.T) {
	root := Root("app")
	got := CallValue(root, "value", func(c *Cursor) string {
		return c.Path()
	})
	assert.Equal(t, "app/value", got)
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "00000000000000ff", ID(255).String())
}
