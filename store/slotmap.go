package store

import (
	"fmt"

	"github.com/davidroman0O/gohooks/topo"
)

// SlotKey is a generational handle into the store's slot allocator.
//
// The zero value is the null key. Occupied slots always carry an odd
// generation; freeing a slot bumps its generation, so keys issued before the
// free never match the slot again.
type SlotKey struct {
	index      uint32
	generation uint32
}

// IsNull reports whether k is the null key.
func (k SlotKey) IsNull() bool {
	return k.generation == 0
}

// String renders the key as index/generation.
func (k SlotKey) String() string {
	if k.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%d/%d", k.index, k.generation)
}

type slot struct {
	generation uint32
	owner      topo.ID
}

func (s slot) occupied() bool {
	return s.generation%2 == 1
}

// slotMap allocates SlotKeys and records which ID owns each live slot.
type slotMap struct {
	slots []slot
	free  []uint32
	live  int
}

func (m *slotMap) insert(owner topo.ID) SlotKey {
	if n := len(m.free); n > 0 {
		idx := m.free[n-1]
		m.free = m.free[:n-1]

		s := &m.slots[idx]
		s.generation++
		s.owner = owner
		m.live++
		return SlotKey{index: idx, generation: s.generation}
	}

	m.slots = append(m.slots, slot{generation: 1, owner: owner})
	m.live++
	return SlotKey{index: uint32(len(m.slots) - 1), generation: 1}
}

func (m *slotMap) contains(k SlotKey) bool {
	if k.IsNull() || int(k.index) >= len(m.slots) {
		return false
	}
	s := m.slots[k.index]
	return s.occupied() && s.generation == k.generation
}

func (m *slotMap) owner(k SlotKey) (topo.ID, bool) {
	if !m.contains(k) {
		return 0, false
	}
	return m.slots[k.index].owner, true
}

func (m *slotMap) remove(k SlotKey) bool {
	if !m.contains(k) {
		return false
	}

	s := &m.slots[k.index]
	s.generation++
	s.owner = 0
	m.live--

	// A slot whose generation wrapped is retired instead of reused.
	if s.generation != 0 {
		m.free = append(m.free, k.index)
	}
	return true
}

func (m *slotMap) len() int {
	return m.live
}

func (m *slotMap) capacity() int {
	return len(m.slots)
}
