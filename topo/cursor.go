package topo

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID identifies a position in the traversal. It is comparable and hashable and
// carries no ordering.
type ID uint64

// String renders the ID as fixed-width hex.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

const (
	kindSlot  byte = 's'
	kindCall  byte = 'c'
	kindKeyed byte = 'k'
)

// trail is shared by every cursor of one traversal and tracks the open scopes.
type trail struct {
	open      []string
	panicPath string
}

// Cursor is an explicit position token: the current ID plus the counters used
// to derive child IDs.
type Cursor struct {
	id    ID
	path  string
	depth int
	slots uint32
	calls map[string]uint32
	trail *trail
}

// Root creates the cursor for the top of a traversal. The same seed always
// yields the same root ID.
func Root(seed string) *Cursor {
	return &Cursor{
		id:    ID(xxhash.Sum64String(seed)),
		path:  seed,
		trail: &trail{},
	}
}

// ID returns the identity of the scope this cursor points at.
func (c *Cursor) ID() ID {
	return c.id
}

// Path returns a readable slash-separated path from the root to this scope.
func (c *Cursor) Path() string {
	return c.path
}

// Depth returns the nesting depth, zero for the root.
func (c *Cursor) Depth() int {
	return c.depth
}

// Next returns the ID for the next positional slot in this scope. Hooks call
// Next once each, so their order inside a scope must not change between
// traversals.
func (c *Cursor) Next() ID {
	id := derive(c.id, kindSlot, "", c.slots)
	c.slots++
	return id
}

// Call runs fn in a nested scope identified by key and the number of earlier
// calls with the same key in this scope. The scope is closed when fn returns,
// including when it panics.
func (c *Cursor) Call(key string, fn func(c *Cursor)) {
	if c.calls == nil {
		c.calls = make(map[string]uint32)
	}
	n := c.calls[key]
	c.calls[key] = n + 1

	segment := key
	if n > 0 {
		segment = fmt.Sprintf("%s#%d", key, n)
	}
	c.enter(derive(c.id, kindCall, key, n), segment, fn)
}

// Keyed runs fn in a nested scope identified only by key. Two Keyed calls with
// the same key in one scope share an identity, which is what list items with
// stable keys want when their position changes.
func (c *Cursor) Keyed(key string, fn func(c *Cursor)) {
	c.enter(derive(c.id, kindKeyed, key, 0), "["+key+"]", fn)
}

// CallValue is Call for scopes that produce a value.
func CallValue[T any](c *Cursor, key string, fn func(c *Cursor) T) T {
	var out T
	c.Call(key, func(child *Cursor) {
		out = fn(child)
	})
	return out
}

// Open returns the paths of the scopes currently entered, outermost first.
func (c *Cursor) Open() []string {
	out := make([]string, len(c.trail.open))
	copy(out, c.trail.open)
	return out
}

// PanicPath returns the innermost scope that was unwinding because of a panic,
// or an empty string if no scope panicked.
func (c *Cursor) PanicPath() string {
	return c.trail.panicPath
}

func (c *Cursor) enter(id ID, segment string, fn func(c *Cursor)) {
	child := &Cursor{
		id:    id,
		path:  c.path + "/" + segment,
		depth: c.depth + 1,
		trail: c.trail,
	}

	c.trail.open = append(c.trail.open, child.path)
	defer func() {
		c.trail.open = c.trail.open[:len(c.trail.open)-1]
		if r := recover(); r != nil {
			if c.trail.panicPath == "" {
				c.trail.panicPath = child.path
			}
			panic(r)
		}
	}()

	fn(child)
}

func derive(parent ID, kind byte, key string, n uint32) ID {
	var buf [13]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(parent))
	buf[8] = kind
	binary.LittleEndian.PutUint32(buf[9:], n)

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(key)
	return ID(d.Sum64())
}

// JoinPath joins path segments the way cursors do.
func JoinPath(segments ...string) string {
	return strings.Join(segments, "/")
}
