// Package store provides an identity-keyed, type-segregated state store.
//
// The store keeps values for positions of a traversal (topo.ID) across repeated
// traversals. Each ID is mapped to an internal generational SlotKey, and values
// live in one homogeneous table per Go type, so a single ID may own values of
// several unrelated types at once.
//
// Core features include:
//   - Type-safe operations using generics: Get, Set, GetOrInit, Update
//   - Copy semantics: values are copied in and out so callers never alias storage
//   - Access handles (State[T]) that can be captured by callbacks and used after
//     the traversal that created them has finished
//   - A reset/touch/purge GC epoch reclaiming IDs not visited in a traversal
//   - Detection of re-entrant initialization or update of the same cell
//   - A Prometheus collector and JSON schemas describing the registered types
//
// GC Epoch:
//
// The driver of the traversal calls ResetUnseen before a traversal and Purge
// after it. Every Get, Set, GetOrInit or Update performed in between marks its
// ID as seen; Purge removes every ID that was not seen:
//
//	s.ResetUnseen()
//	defer s.Purge()
//	render(s)
//
// Skipping the protocol is not an error, but cells are never reclaimed.
//
// Concurrency:
//
// The store is meant to be driven from one owning goroutine. An internal lock
// keeps its maps consistent, but it is never held while user callbacks run, so
// nested operations on other cells are allowed from inside a factory or an
// update function.
package store
