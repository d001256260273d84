package store

import "reflect"

// anyTable is the narrow, type-erased view of a typed table used by the
// registry for operations that do not need to know T.
type anyTable interface {
	// remove drops the entry written under k. It reports false if the entry
	// is absent or was written by an older generation of the slot.
	remove(k SlotKey) bool
	// sweep drops every entry for which alive returns false.
	sweep(alive func(SlotKey) bool) int
	// count returns live and orphaned entries.
	count(alive func(SlotKey) bool) (live int, orphaned int)
	elemType() reflect.Type
}

type entry[T any] struct {
	generation uint32
	value      T
}

// table is a secondary map from SlotKey to values of exactly one type. It is
// indexed by slot index and each entry remembers the generation that wrote it,
// so entries left behind by a freed slot are invisible to the slot's next owner.
type table[T any] struct {
	entries []entry[T]
	used    int
}

func newTable[T any]() *table[T] {
	return &table[T]{}
}

func (t *table[T]) get(k SlotKey) (T, bool) {
	var zero T
	if k.IsNull() || int(k.index) >= len(t.entries) {
		return zero, false
	}
	e := t.entries[k.index]
	if e.generation != k.generation {
		return zero, false
	}
	return e.value, true
}

func (t *table[T]) insert(k SlotKey, value T) {
	if n := int(k.index) + 1; n > len(t.entries) {
		grown := make([]entry[T], n, max(n, 2*len(t.entries)))
		copy(grown, t.entries)
		t.entries = grown
	}

	e := &t.entries[k.index]
	if e.generation == 0 {
		t.used++
	}
	e.generation = k.generation
	e.value = value
}

func (t *table[T]) remove(k SlotKey) bool {
	if k.IsNull() || int(k.index) >= len(t.entries) {
		return false
	}
	e := &t.entries[k.index]
	if e.generation != k.generation {
		return false
	}
	t.clear(e)
	return true
}

func (t *table[T]) sweep(alive func(SlotKey) bool) int {
	dropped := 0
	for i := range t.entries {
		e := &t.entries[i]
		if e.generation == 0 {
			continue
		}
		if alive(SlotKey{index: uint32(i), generation: e.generation}) {
			continue
		}
		t.clear(e)
		dropped++
	}
	return dropped
}

func (t *table[T]) count(alive func(SlotKey) bool) (int, int) {
	live := 0
	for i, e := range t.entries {
		if e.generation == 0 {
			continue
		}
		if alive(SlotKey{index: uint32(i), generation: e.generation}) {
			live++
		}
	}
	return live, t.used - live
}

func (t *table[T]) elemType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (t *table[T]) clear(e *entry[T]) {
	var zero T
	e.generation = 0
	e.value = zero
	t.used--
}
