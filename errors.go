package gohooks

import (
	"errors"
	"fmt"
)

var (
	// ErrRenderInProgress is returned when Render is called from inside a
	// render of the same runtime.
	ErrRenderInProgress = errors.New("gohooks: render already in progress")

	// ErrIndexOutOfRange is returned by ListControl operations given an index
	// outside the list.
	ErrIndexOutOfRange = errors.New("gohooks: index out of range")
)

// RenderError reports a panic recovered while rendering.
type RenderError struct {
	// Path is the innermost scope that was open when the panic happened.
	Path string
	// Value is the value passed to panic.
	Value interface{}
	// Err is Value when it is an error, or an error describing it.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render panicked at %s: %v", e.Path, e.Err)
}

// Unwrap returns the panic value when it was an error.
func (e *RenderError) Unwrap() error {
	return e.Err
}

func newRenderError(path string, value interface{}) *RenderError {
	err, ok := value.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", value)
	}
	return &RenderError{Path: path, Value: value, Err: err}
}
