package store

import (
	"reflect"

	"github.com/davidroman0O/gohooks/topo"
)

// State is an access handle for the cell of type T owned by one ID.
//
// A State is a small value: copy it freely and capture it in callbacks that
// run long after the traversal that produced it. It does not keep the cell
// alive; once the ID is purged, Get reports absence and Update returns
// ErrNotFound.
type State[T any] struct {
	store *Store
	id    topo.ID
}

// Handle returns the access handle for id's cell of type T.
func Handle[T any](s *Store, id topo.ID) State[T] {
	return State[T]{store: s, id: id}
}

// ID returns the identity the handle points at.
func (h State[T]) ID() topo.ID {
	return h.id
}

// Store returns the store the handle is bound to.
func (h State[T]) Store() *Store {
	return h.store
}

// Bound reports whether the handle refers to a store.
func (h State[T]) Bound() bool {
	return h.store != nil
}

// Get returns a copy of the current value.
func (h State[T]) Get() (T, bool) {
	if h.store == nil {
		var zero T
		return zero, false
	}
	return Get[T](h.store, h.id)
}

// MustGet returns the current value and panics with a *CellError wrapping
// ErrNotFound if there is none. Use it only where initialisation is
// guaranteed, e.g. right after UseState in the same traversal.
func (h State[T]) MustGet() T {
	v, ok := h.Get()
	if !ok {
		panic(cellError("get", h.id, reflect.TypeOf((*T)(nil)).Elem(), ErrNotFound))
	}
	return v
}

// GetOr returns the current value or fallback if there is none.
func (h State[T]) GetOr(fallback T) T {
	if v, ok := h.Get(); ok {
		return v
	}
	return fallback
}

// Set replaces the current value, creating the cell if needed.
func (h State[T]) Set(value T) error {
	if h.store == nil {
		return cellError("set", h.id, reflect.TypeOf((*T)(nil)).Elem(), ErrDetached)
	}
	return Set(h.store, h.id, value)
}

// Update applies fn to the current value. It returns ErrNotFound when the
// cell does not exist instead of creating it.
func (h State[T]) Update(fn func(*T)) error {
	if h.store == nil {
		return cellError("update", h.id, reflect.TypeOf((*T)(nil)).Elem(), ErrDetached)
	}
	return Update(h.store, h.id, fn)
}

// Getter returns a function reading the current value, for code that should
// not be able to write.
func (h State[T]) Getter() func() (T, bool) {
	return h.Get
}
