package gohooks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	logger := NewTestLogger(t)
	fail := false

	rt := New(func(f *Frame) error {
		UseState(f, func() int { return 0 })
		if fail {
			return errors.New("bad view")
		}
		return nil
	}, WithLogger(logger), WithMiddleware(LoggingMiddleware()))

	require.NoError(t, rt.Render(context.Background()))
	assert.True(t, logger.Contains("Middleware: Starting render 1"))
	assert.True(t, logger.Contains("completed in"))
	assert.True(t, logger.Contains("with 1 live IDs"))

	fail = true
	require.Error(t, rt.Render(context.Background()))
	assert.True(t, logger.Contains("Middleware: Render 2 failed after"))
}

func TestTimeLimitMiddleware(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool

	rt := New(func(f *Frame) error {
		deadline, hasDeadline = f.Context().Deadline()
		return nil
	}, WithMiddleware(TimeLimitMiddleware(time.Minute)))

	start := time.Now()
	require.NoError(t, rt.Render(context.Background()))
	assert.True(t, hasDeadline)
	assert.WithinDuration(t, start.Add(time.Minute), deadline, 5*time.Second)
}

func TestTimeLimitMiddlewareExpired(t *testing.T) {
	rt := New(func(f *Frame) error {
		<-f.Context().Done()
		return f.Context().Err()
	}, WithMiddleware(TimeLimitMiddleware(10*time.Millisecond)))

	err := rt.Render(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
