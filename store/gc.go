package store

import "github.com/davidroman0O/gohooks/topo"

// Phase is the state of the GC epoch.
type Phase int

const (
	// PhaseIdle means no epoch is running; touches are not tracked.
	PhaseIdle Phase = iota
	// PhaseMarking means ResetUnseen ran and accesses are being recorded.
	PhaseMarking
	// phasePurging is held while Purge removes unseen IDs. Purge keeps the
	// store lock for its whole run, so Phase never reports it.
	phasePurging
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMarking:
		return "marking"
	case phasePurging:
		return "purging"
	default:
		return "unknown"
	}
}

// Stats is a snapshot of the store's size and lifetime counters.
type Stats struct {
	// IDs is the number of live IDs.
	IDs int
	// Slots is the number of slots ever allocated, live or free.
	Slots int
	// Types is the number of registered types.
	Types int
	// Orphans is the number of typed-table entries whose ID is gone.
	Orphans int
	// Epochs counts completed purges.
	Epochs uint64
	// Purged counts IDs removed by purges.
	Purged uint64
	// Removed counts IDs removed through Remove.
	Removed uint64
	// Reentrant counts operations rejected with ErrReentrant.
	Reentrant uint64
}

// ResetUnseen starts a GC epoch: every currently known ID is marked unseen
// until it is accessed again.
func (s *Store) ResetUnseen() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unseen = make(map[topo.ID]struct{}, len(s.ids))
	for id := range s.ids {
		s.unseen[id] = struct{}{}
	}
	s.phase = PhaseMarking
}

// Purge removes every ID that was not accessed since ResetUnseen and returns
// how many were removed. Calling Purge again without a new ResetUnseen is a
// no-op.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = phasePurging
	purged := 0
	for id := range s.unseen {
		if s.removeLocked(id) {
			purged++
		}
	}
	s.unseen = make(map[topo.ID]struct{})
	s.phase = PhaseIdle

	s.stats.Epochs++
	s.stats.Purged += uint64(purged)
	return purged
}

// Phase returns the current GC phase: PhaseMarking between ResetUnseen and
// Purge, PhaseIdle otherwise.
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.phase
}

// Unseen returns how many IDs would be purged if Purge ran now.
func (s *Store) Unseen() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.unseen)
}

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	st.IDs = len(s.ids)
	st.Slots = s.slots.capacity()
	st.Types = len(s.types.tables)
	st.Orphans = s.orphansLocked()
	return st
}

// touch marks id as seen in the running epoch.
func (s *Store) touch(id topo.ID) {
	if s.phase != PhaseMarking {
		return
	}
	delete(s.unseen, id)
}
