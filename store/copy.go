package store

import (
	"reflect"
	"unsafe"
)

// Cloner lets a stored type control how it is copied in and out of the store.
type Cloner[T any] interface {
	Clone() T
}

// clone returns a copy of v that shares no mutable memory reachable through
// exported fields, pointers, maps, slices or arrays.
func clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}

	rv := reflect.ValueOf(&v).Elem()
	out, ok := newCopier().copy(rv).Interface().(T)
	if !ok {
		return v
	}
	return out
}

// visit identifies memory already copied: pointers and maps by address and
// type, slices by their first element, length and type.
type visit struct {
	ptr unsafe.Pointer
	len int
	typ reflect.Type
}

// copier deep-copies one value. Memory reached twice is copied once, so
// cycles terminate and shared pointers stay shared in the copy.
type copier struct {
	seen map[visit]reflect.Value
}

func newCopier() *copier {
	return &copier{seen: make(map[visit]reflect.Value)}
}

// copy copies a value. Unexported struct fields are copied shallowly because
// reflection cannot set them individually.
func (c *copier) copy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		key := visit{ptr: v.UnsafePointer(), typ: v.Type()}
		if out, ok := c.seen[key]; ok {
			return out
		}
		out := reflect.New(v.Type().Elem())
		c.seen[key] = out
		out.Elem().Set(c.copy(v.Elem()))
		return out

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(c.copy(v.Elem()))
		return out

	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			field := out.Field(i)
			if !field.CanSet() {
				continue
			}
			field.Set(c.copy(v.Field(i)))
		}
		return out

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		key := visit{ptr: v.UnsafePointer(), typ: v.Type()}
		if out, ok := c.seen[key]; ok {
			return out
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		c.seen[key] = out
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), c.copy(iter.Value()))
		}
		return out

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		key := visit{ptr: v.UnsafePointer(), len: v.Len(), typ: v.Type()}
		if v.Len() > 0 {
			if out, ok := c.seen[key]; ok {
				return out
			}
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		if v.Len() > 0 {
			c.seen[key] = out
		}
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(c.copy(v.Index(i)))
		}
		return out

	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(c.copy(v.Index(i)))
		}
		return out

	default:
		return v
	}
}
