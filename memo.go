package gohooks

import "github.com/davidroman0O/gohooks/store"

// MemoControl forces a memoised value to be recomputed on the next render.
type MemoControl struct {
	trigger store.State[bool]
}

// Recalc marks the value stale. It may be called from callbacks after the
// render that returned the control.
func (m MemoControl) Recalc() error {
	return m.trigger.Set(true)
}

// UseMemo returns the value computed by fn the first time this position is
// rendered, and recomputes it only when recalc is true or Recalc was called
// since the previous render.
//
// fn is captured on the render that calls it. Anything it reads that can
// change should come from state or Watch, not from variables captured once.
func UseMemo[T any](f *Frame, recalc bool, fn func() T) (T, MemoControl) {
	var (
		value   T
		control MemoControl
	)

	f.Call("memo", func(f *Frame) {
		stale, trigger := UseState(f, func() bool { return false })
		control = MemoControl{trigger: trigger}

		fresh := false
		v, h := UseState(f, func() T {
			fresh = true
			return fn()
		})
		value = v

		if fresh || !(stale || recalc) {
			return
		}

		value = fn()
		if err := h.Set(value); err != nil {
			f.Logger().Warn("memo: %v", err)
		}
		if err := trigger.Set(false); err != nil {
			f.Logger().Warn("memo: %v", err)
		}
	})

	return value, control
}

// Watched is the result of Watch.
type Watched[T any] struct {
	// Changed reports whether the value differs from the previous render.
	Changed bool

	state store.State[T]
}

// Value returns the watched value as of the current render.
func (w Watched[T]) Value() T {
	return w.state.MustGet()
}

// State returns the handle of the stored copy.
func (w Watched[T]) State() store.State[T] {
	return w.state
}

// Watch reports whether current differs from the value seen at this position
// on the previous render. The first render reports no change.
func Watch[T comparable](f *Frame, current T) Watched[T] {
	return WatchFunc(f, current, func(a, b T) bool { return a == b })
}

// WatchFunc is Watch for types that are not comparable with ==.
func WatchFunc[T any](f *Frame, current T, equal func(a, b T) bool) Watched[T] {
	return CallValue(f, "watch", func(f *Frame) Watched[T] {
		previous, h := UseState(f, func() T { return current })
		if equal(previous, current) {
			return Watched[T]{state: h}
		}
		if err := h.Set(current); err != nil {
			f.Logger().Warn("watch: %v", err)
		}
		return Watched[T]{Changed: true, state: h}
	})
}
