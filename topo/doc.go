// Package topo produces stable identities for positions in a traversal.
//
// A traversal is one from-scratch execution of view code. Every function that
// keeps state receives an explicit *Cursor describing where it sits in the call
// tree and derives IDs from it:
//
//	root := topo.Root("app")
//	root.Call("header", func(c *topo.Cursor) {
//	    id := c.Next() // same value on every traversal taking this path
//	})
//
// IDs are derived by hashing the parent ID with the scope key and an occurrence
// counter, so the same call-site path yields the same ID on every traversal
// while sibling scopes and repeated calls with the same key stay distinct.
// Keyed scopes ignore occurrence order and are used for list items whose
// position may change between traversals.
//
// Cursors are not safe for concurrent use. A traversal must build a fresh root
// with Root; reusing a cursor across traversals would keep advancing its
// counters and produce different IDs.
package topo
