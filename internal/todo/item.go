package todo

import (
	"errors"
	"fmt"
)

// Item is one entry of the list.
type Item struct {
	ID          int
	Description string
	Done        bool
}

// Filter selects which items are shown.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

// ErrUnknownFilter is returned for filter names other than all, active and
// done.
var ErrUnknownFilter = errors.New("unknown filter")

// ParseFilter converts a filter name.
func ParseFilter(name string) (Filter, error) {
	switch f := Filter(name); f {
	case FilterAll, FilterActive, FilterDone:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownFilter)
	}
}

// Shows reports whether item passes the filter.
func (f Filter) Shows(item Item) bool {
	switch f {
	case FilterActive:
		return !item.Done
	case FilterDone:
		return item.Done
	default:
		return true
	}
}
