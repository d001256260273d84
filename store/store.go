package store

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"github.com/davidroman0O/gohooks/topo"
)

// Options configures a Store.
type Options struct {
	// CopyValues copies values on the way in and out of the store so callers
	// never alias stored memory. Disable only for types that are immutable.
	CopyValues bool

	// ScrubTables removes an ID's entries from every typed table when the ID
	// is removed or purged. When disabled the entries stay behind as orphans
	// until SweepOrphans runs; they are never visible through Get.
	ScrubTables bool
}

// DefaultOptions returns the options used by NewStore.
func DefaultOptions() Options {
	return Options{
		CopyValues:  true,
		ScrubTables: true,
	}
}

// Option is a function that configures a Store.
type Option func(*Options)

// WithCopyValues toggles copy-in/copy-out semantics.
func WithCopyValues(enabled bool) Option {
	return func(o *Options) {
		o.CopyValues = enabled
	}
}

// WithScrubTables toggles cross-table cleanup on remove and purge.
func WithScrubTables(enabled bool) Option {
	return func(o *Options) {
		o.ScrubTables = enabled
	}
}

// cellRef names one cell: an ID and the type of the table it lives in.
type cellRef struct {
	id  topo.ID
	typ reflect.Type
}

// Store maps traversal IDs to typed state cells.
type Store struct {
	mu deadlock.Mutex

	id       string
	opts     Options
	ids      map[topo.ID]SlotKey
	slots    slotMap
	types    registry
	unseen   map[topo.ID]struct{}
	phase    Phase
	inflight map[cellRef]struct{}
	stats    Stats
}

// NewStore constructs an empty store.
func NewStore(opts ...Option) *Store {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		id:       uuid.NewString(),
		opts:     o,
		ids:      make(map[topo.ID]SlotKey),
		types:    newRegistry(),
		unseen:   make(map[topo.ID]struct{}),
		inflight: make(map[cellRef]struct{}),
	}
}

// ID returns the unique identifier of this store instance.
func (s *Store) ID() string {
	return s.id
}

// Options returns the options the store was created with.
func (s *Store) Options() Options {
	return s.opts
}

// Get returns a copy of the value of type T stored for id.
func Get[T any](s *Store, id topo.ID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch(id)
	v, ok := getLocked[T](s, id)
	if !ok {
		return v, false
	}
	return copyValue(s, v), true
}

// Set stores value for id, allocating a slot if id is new. It fails with
// ErrReentrant if the same cell is being initialised or updated further up
// the call stack, because that write would be silently overwritten.
func Set[T any](s *Store, id topo.ID, value T) error {
	ref := cellRef{id: id, typ: reflect.TypeOf((*T)(nil)).Elem()}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch(id)
	if _, busy := s.inflight[ref]; busy {
		s.stats.Reentrant++
		return cellError("set", id, ref.typ, ErrReentrant)
	}
	setLocked(s, id, copyValue(s, value))
	return nil
}

// GetOrInit returns the value stored for id, or stores and returns the result
// of factory when there is none. factory runs at most once per missing cell
// and runs without the store lock held, so it may use other cells. Calling
// GetOrInit for the same cell from inside factory returns ErrReentrant.
func GetOrInit[T any](s *Store, id topo.ID, factory func() T) (T, error) {
	ref := cellRef{id: id, typ: reflect.TypeOf((*T)(nil)).Elem()}

	s.mu.Lock()
	s.touch(id)
	if v, ok := getLocked[T](s, id); ok {
		v = copyValue(s, v)
		s.mu.Unlock()
		return v, nil
	}
	if _, busy := s.inflight[ref]; busy {
		s.stats.Reentrant++
		s.mu.Unlock()
		var zero T
		return zero, cellError("get_or_init", id, ref.typ, ErrReentrant)
	}
	s.inflight[ref] = struct{}{}
	s.mu.Unlock()

	defer s.release(ref)

	value := factory()

	s.mu.Lock()
	setLocked(s, id, copyValue(s, value))
	s.mu.Unlock()
	return value, nil
}

// Update applies fn to a copy of the value stored for id and writes the result
// back. It returns ErrNotFound if there is no value, or if the cell was removed
// while fn ran, and ErrReentrant if fn updates the same cell again.
func Update[T any](s *Store, id topo.ID, fn func(*T)) error {
	ref := cellRef{id: id, typ: reflect.TypeOf((*T)(nil)).Elem()}

	s.mu.Lock()
	s.touch(id)
	if _, busy := s.inflight[ref]; busy {
		s.stats.Reentrant++
		s.mu.Unlock()
		return cellError("update", id, ref.typ, ErrReentrant)
	}
	v, ok := getLocked[T](s, id)
	if !ok {
		s.mu.Unlock()
		return cellError("update", id, ref.typ, ErrNotFound)
	}
	v = copyValue(s, v)
	s.inflight[ref] = struct{}{}
	s.mu.Unlock()

	defer s.release(ref)

	fn(&v)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; !ok {
		return cellError("update", id, ref.typ, ErrNotFound)
	}
	setLocked(s, id, v)
	return nil
}

// Remove drops id and frees its slot. It reports whether id was known.
func (s *Store) Remove(id topo.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeLocked(id) {
		return false
	}
	s.stats.Removed++
	return true
}

// Contains reports whether id currently owns a slot.
func (s *Store) Contains(id topo.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ids[id]
	return ok
}

// Len returns the number of live IDs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.ids)
}

// Keys returns the live IDs in no particular order.
func (s *Store) Keys() []topo.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]topo.ID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Orphans returns the number of typed-table entries whose ID is gone.
func (s *Store) Orphans() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.orphansLocked()
}

// SweepOrphans drops every typed-table entry whose ID is gone and returns how
// many were dropped. With ScrubTables enabled there is never anything to sweep.
func (s *Store) SweepOrphans() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	s.types.each(func(t anyTable) {
		dropped += t.sweep(s.slots.contains)
	})
	return dropped
}

func getLocked[T any](s *Store, id topo.ID) (T, bool) {
	var zero T
	key, ok := s.ids[id]
	if !ok {
		return zero, false
	}
	t := lookup[T](&s.types, false)
	if t == nil {
		return zero, false
	}
	return t.get(key)
}

func setLocked[T any](s *Store, id topo.ID, value T) {
	key, ok := s.ids[id]
	if !ok {
		key = s.slots.insert(id)
		s.ids[id] = key
	}
	lookup[T](&s.types, true).insert(key, value)
}

func (s *Store) removeLocked(id topo.ID) bool {
	key, ok := s.ids[id]
	if !ok {
		return false
	}

	delete(s.ids, id)
	delete(s.unseen, id)
	if s.opts.ScrubTables {
		s.types.each(func(t anyTable) {
			t.remove(key)
		})
	}
	s.slots.remove(key)
	return true
}

func (s *Store) orphansLocked() int {
	total := 0
	s.types.each(func(t anyTable) {
		_, orphaned := t.count(s.slots.contains)
		total += orphaned
	})
	return total
}

func (s *Store) release(ref cellRef) {
	s.mu.Lock()
	delete(s.inflight, ref)
	s.mu.Unlock()
}

func copyValue[T any](s *Store, v T) T {
	if !s.opts.CopyValues {
		return v
	}
	return clone(v)
}
