package gohooks

import (
	"fmt"

	"github.com/davidroman0O/gohooks/store"
)

// UseList keeps a list in state and returns its items with a control for
// changing them. initial runs on the first render only.
func UseList[T any](f *Frame, initial func() []T) ([]T, ListControl[T]) {
	items, h := UseState(f, initial)
	return items, ListControl[T]{items: h}
}

// ListControl edits a list kept by UseList. Like any access handle it can be
// copied and used from callbacks after the render.
type ListControl[T any] struct {
	items store.State[[]T]
}

// State returns the handle of the underlying list.
func (l ListControl[T]) State() store.State[[]T] {
	return l.items
}

// Items returns a copy of the list.
func (l ListControl[T]) Items() []T {
	items, _ := l.items.Get()
	return items
}

// Len returns the number of items.
func (l ListControl[T]) Len() int {
	return len(l.Items())
}

// MoveItemToPosition moves the item at from so that it ends up before the
// item currently at to. to may be Len() to move the item to the end. Moves
// with from == to, or with an index out of range, leave the list unchanged.
//
// Given a b c d, moving 0 to 2 gives b a c d and moving 3 to 0 gives d a b c.
func (l ListControl[T]) MoveItemToPosition(from, to int) error {
	return l.items.Update(func(items *[]T) {
		*items = reposition(*items, from, to)
	})
}

// MoveItemUp swaps the item at i with the one before it.
func (l ListControl[T]) MoveItemUp(i int) error {
	if i <= 0 {
		return nil
	}
	return l.MoveItemToPosition(i, i-1)
}

// MoveItemDown swaps the item at i with the one after it. Moving the last item
// down is a no-op.
func (l ListControl[T]) MoveItemDown(i int) error {
	return l.MoveItemToPosition(i, i+2)
}

// Insert places item at index i, shifting later items. i may be Len().
func (l ListControl[T]) Insert(i int, item T) error {
	var err error
	updateErr := l.items.Update(func(items *[]T) {
		if i < 0 || i > len(*items) {
			err = indexError("insert", i, len(*items))
			return
		}
		*items = append(*items, item)
		copy((*items)[i+1:], (*items)[i:])
		(*items)[i] = item
	})
	if updateErr != nil {
		return updateErr
	}
	return err
}

// Remove deletes and returns the item at i.
func (l ListControl[T]) Remove(i int) (T, error) {
	var (
		removed T
		err     error
	)
	updateErr := l.items.Update(func(items *[]T) {
		if i < 0 || i >= len(*items) {
			err = indexError("remove", i, len(*items))
			return
		}
		removed = (*items)[i]
		*items = append((*items)[:i], (*items)[i+1:]...)
	})
	if updateErr != nil {
		return removed, updateErr
	}
	return removed, err
}

// Replace swaps the item at i for item and returns the previous one.
func (l ListControl[T]) Replace(i int, item T) (T, error) {
	var (
		previous T
		err      error
	)
	updateErr := l.items.Update(func(items *[]T) {
		if i < 0 || i >= len(*items) {
			err = indexError("replace", i, len(*items))
			return
		}
		previous = (*items)[i]
		(*items)[i] = item
	})
	if updateErr != nil {
		return previous, updateErr
	}
	return previous, err
}

// Push appends item.
func (l ListControl[T]) Push(item T) error {
	return l.items.Update(func(items *[]T) {
		*items = append(*items, item)
	})
}

// Set replaces the whole list.
func (l ListControl[T]) Set(items []T) error {
	return l.items.Set(items)
}

// reposition implements MoveItemToPosition on a plain slice.
func reposition[T any](items []T, from, to int) []T {
	if from < 0 || to < 0 || from >= len(items) || to > len(items) || from == to {
		return items
	}

	item := items[from]
	items = append(items[:from], items[from+1:]...)
	if from < to {
		to--
	}

	items = append(items, item)
	copy(items[to+1:], items[to:])
	items[to] = item
	return items
}

func indexError(op string, i, n int) error {
	return fmt.Errorf("%s at %d in list of %d: %w", op, i, n, ErrIndexOutOfRange)
}
