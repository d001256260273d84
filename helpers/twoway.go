package helpers

import (
	"fmt"

	"github.com/davidroman0O/gohooks"
	"github.com/davidroman0O/gohooks/store"
)

// peerPair is the shared cell linking the two sides of a two-way binding.
type peerPair[T any] struct {
	Left  store.State[T]
	Right store.State[T]
}

// Peers gives each side of UseTwoWay access to both values.
type Peers[T any] struct {
	shared store.State[peerPair[T]]
}

// Left returns the value owned by the left scope.
func (p Peers[T]) Left() (T, bool) {
	pair, ok := p.shared.Get()
	if !ok {
		var zero T
		return zero, false
	}
	return pair.Left.Get()
}

// Right returns the value owned by the right scope.
func (p Peers[T]) Right() (T, bool) {
	pair, ok := p.shared.Get()
	if !ok {
		var zero T
		return zero, false
	}
	return pair.Right.Get()
}

// SetLeft replaces the value owned by the left scope.
func (p Peers[T]) SetLeft(value T) error {
	pair, err := p.pair()
	if err != nil {
		return err
	}
	return pair.Left.Set(value)
}

// SetRight replaces the value owned by the right scope.
func (p Peers[T]) SetRight(value T) error {
	pair, err := p.pair()
	if err != nil {
		return err
	}
	return pair.Right.Set(value)
}

func (p Peers[T]) pair() (peerPair[T], error) {
	pair, ok := p.shared.Get()
	if !ok || !pair.Left.Bound() {
		return pair, fmt.Errorf("two-way peers are not linked yet: %w", store.ErrNotFound)
	}
	return pair, nil
}

// UseTwoWay renders left and right in two sibling scopes that each own a
// value initialised to def, and lets both read and write either value through
// Peers. The peers are linked at the end of the first render, so callbacks
// created during it work but reads during it report no value.
func UseTwoWay[T any](f *gohooks.Frame, def T, left, right func(f *gohooks.Frame, peers Peers[T])) {
	f.Call("two_way", func(f *gohooks.Frame) {
		_, shared := gohooks.UseState(f, func() peerPair[T] { return peerPair[T]{} })
		peers := Peers[T]{shared: shared}

		side := func(key string, view func(*gohooks.Frame, Peers[T])) store.State[T] {
			return gohooks.CallValue(f, key, func(f *gohooks.Frame) store.State[T] {
				_, own := gohooks.UseState(f, func() T { return def })
				view(f, peers)
				return own
			})
		}
		l := side("left", left)
		r := side("right", right)

		if err := shared.Set(peerPair[T]{Left: l, Right: r}); err != nil {
			f.Logger().Warn("two_way: %v", err)
		}
	})
}
