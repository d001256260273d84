package store

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/davidroman0O/gohooks/topo"
)

// Sentinel errors returned by store operations.
//
// Callers should use [errors.Is] to check error types:
//
//	if errors.Is(err, store.ErrNotFound) {
//	    // the cell was never initialised or has been purged
//	}
var (
	// ErrNotFound indicates there is no live cell for the ID and type.
	//
	// The ID was never set, was removed, or was purged by a GC epoch.
	ErrNotFound = errors.New("store: cell not found")

	// ErrReentrant indicates an operation on a cell that is already being
	// initialised or updated further up the call stack.
	//
	// This is a programming error: a factory or update function touched its
	// own cell. The store is left unchanged.
	ErrReentrant = errors.New("store: re-entrant operation on cell")

	// ErrDetached indicates an access handle that is not bound to a store,
	// typically the zero value of State[T].
	ErrDetached = errors.New("store: handle is not bound to a store")
)

// CellError describes a failed operation on one cell.
type CellError struct {
	// Op is the operation that failed, e.g. "update".
	Op string
	// ID is the identity of the cell.
	ID topo.ID
	// Type is the stored type of the cell.
	Type reflect.Type
	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *CellError) Error() string {
	return fmt.Sprintf("%s %v[%s]: %v", e.Op, e.Type, e.ID, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *CellError) Unwrap() error {
	return e.Err
}

func cellError(op string, id topo.ID, typ reflect.Type, err error) error {
	return &CellError{Op: op, ID: id, Type: typ, Err: err}
}
