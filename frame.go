package gohooks

import (
	"context"
	"reflect"

	"github.com/davidroman0O/gohooks/store"
	"github.com/davidroman0O/gohooks/topo"
)

// Frame is the position of view code in the current render. Every hook takes
// the Frame of the scope it is called in.
//
// A Frame is only valid during the render that created it. Code that runs
// later, such as event callbacks, must capture the access handles returned by
// hooks instead.
type Frame struct {
	ctx    context.Context
	rt     *Runtime
	cursor *topo.Cursor
	env    *env
	logger Logger
}

// env holds the values provided in one scope. Lookups walk towards the root.
type env struct {
	parent *env
	values map[reflect.Type]interface{}
}

func (e *env) lookup(typ reflect.Type) (interface{}, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.values[typ]; ok {
			return v, true
		}
	}
	return nil, false
}

func newFrame(ctx context.Context, rt *Runtime, cursor *topo.Cursor, logger Logger) *Frame {
	return &Frame{
		ctx:    ctx,
		rt:     rt,
		cursor: cursor,
		env:    &env{},
		logger: logger,
	}
}

func (f *Frame) child(c *topo.Cursor) *Frame {
	return &Frame{
		ctx:    f.ctx,
		rt:     f.rt,
		cursor: c,
		env:    &env{parent: f.env},
		logger: f.logger,
	}
}

// Context returns the context of the render.
func (f *Frame) Context() context.Context {
	return f.ctx
}

// Runtime returns the runtime performing the render.
func (f *Frame) Runtime() *Runtime {
	return f.rt
}

// Store returns the store holding the view's state.
func (f *Frame) Store() *store.Store {
	return f.rt.store
}

// Cursor returns the identity cursor of this scope.
func (f *Frame) Cursor() *topo.Cursor {
	return f.cursor
}

// ID returns the identity of this scope.
func (f *Frame) ID() topo.ID {
	return f.cursor.ID()
}

// Path returns the readable path of this scope.
func (f *Frame) Path() string {
	return f.cursor.Path()
}

// Logger returns a logger that prefixes messages with the scope path.
func (f *Frame) Logger() Logger {
	return &scopedLogger{path: f.cursor.Path(), logger: f.logger}
}

// Call runs fn in a nested scope named key. Repeated calls with the same key
// in one scope get distinct identities by occurrence, so the order of calls
// must be stable between renders.
func (f *Frame) Call(key string, fn func(f *Frame)) {
	f.cursor.Call(key, func(c *topo.Cursor) {
		fn(f.child(c))
	})
}

// Keyed runs fn in a nested scope identified by key alone. Use it for list
// items, whose state must follow the item when its position changes.
func (f *Frame) Keyed(key string, fn func(f *Frame)) {
	f.cursor.Keyed(key, func(c *topo.Cursor) {
		fn(f.child(c))
	})
}

// Dispatch hands fn to the runtime's render loop. It is shorthand for
// f.Runtime().Dispatch(fn).
func (f *Frame) Dispatch(fn func()) bool {
	return f.rt.Dispatch(fn)
}

// CallValue is Frame.Call for scopes that produce a value.
func CallValue[T any](f *Frame, key string, fn func(f *Frame) T) T {
	var out T
	f.Call(key, func(child *Frame) {
		out = fn(child)
	})
	return out
}

// Provide makes value available to this scope and every scope nested in it
// afterwards, until a nested scope provides another value of the same type.
func Provide[T any](f *Frame, value T) {
	if f.env.values == nil {
		f.env.values = make(map[reflect.Type]interface{})
	}
	f.env.values[reflect.TypeOf((*T)(nil)).Elem()] = value
}

// Consume returns the nearest value of type T provided by this scope or an
// enclosing one.
func Consume[T any](f *Frame) (T, bool) {
	v, ok := f.env.lookup(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}
