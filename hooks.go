package gohooks

import (
	"github.com/davidroman0O/gohooks/store"
	"github.com/davidroman0O/gohooks/topo"
)

// UseState returns the state kept at this hook's position, calling init to
// create it on the first render that reaches the position. The handle stays
// valid after the render and may be captured by callbacks.
//
// UseState panics if init uses the same state again, which Render reports as
// a *RenderError wrapping store.ErrReentrant. Use TryUseState to handle that
// case as an error.
func UseState[T any](f *Frame, init func() T) (T, store.State[T]) {
	v, h, err := TryUseState(f, init)
	if err != nil {
		panic(err)
	}
	return v, h
}

// TryUseState is UseState returning an error instead of panicking.
func TryUseState[T any](f *Frame, init func() T) (T, store.State[T], error) {
	return useStateAt(f, f.cursor.Next(), init)
}

func useStateAt[T any](f *Frame, id topo.ID, init func() T) (T, store.State[T], error) {
	s := f.Store()
	v, err := store.GetOrInit(s, id, init)
	return v, store.Handle[T](s, id), err
}

// UseStateGetter is UseState for code that only needs to read the state
// later.
func UseStateGetter[T any](f *Frame, init func() T) func() (T, bool) {
	_, h := UseState(f, init)
	return h.Getter()
}

// DoOnce runs fn the first time the render reaches this position and never
// again while the position keeps being rendered.
func DoOnce(f *Frame, fn func()) {
	f.Call("do_once", func(f *Frame) {
		done, h := UseState(f, func() bool { return false })
		if done {
			return
		}
		fn()
		if err := h.Set(true); err != nil {
			f.Logger().Warn("do_once: %v", err)
		}
	})
}

// UseParent returns the ID of the closest enclosing scope that called
// UseParent, and makes this scope the parent of the scopes nested in it. The
// parent is recorded on the first render and kept afterwards.
func UseParent(f *Frame) (topo.ID, bool) {
	p, _ := UseState(f, func() parentScope {
		found, ok := Consume[parentScope](f)
		return parentScope{ID: found.ID, Found: ok}
	})
	Provide(f, parentScope{ID: f.ID(), Found: true})
	return p.ID, p.Found
}

type parentScope struct {
	ID    topo.ID
	Found bool
}
