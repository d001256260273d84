package gohooks

import "context"

// View is the render function of an application. It is called once per
// render with a fresh Frame positioned at the root of the call tree.
type View func(f *Frame) error

// RenderFunc is the core function type for executing one render.
type RenderFunc func(ctx context.Context, rt *Runtime, logger Logger) error

// Middleware represents a function that wraps a render.
// Middleware can perform actions before and after the render, replace the
// context, or skip the render entirely.
type Middleware func(next RenderFunc) RenderFunc

// Logger provides a simple interface for runtime logging
type Logger interface {
	// Debug logs a message at debug level
	Debug(format string, args ...interface{})

	// Info logs a message at info level
	Info(format string, args ...interface{})

	// Warn logs a message at warning level
	Warn(format string, args ...interface{})

	// Error logs a message at error level
	Error(format string, args ...interface{})
}
