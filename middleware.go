package gohooks

import (
	"context"
	"time"
)

// LoggingMiddleware creates a middleware that logs every render
func LoggingMiddleware() Middleware {
	return func(next RenderFunc) RenderFunc {
		return func(ctx context.Context, rt *Runtime, logger Logger) error {
			logger.Info("Middleware: Starting render %d of runtime %s", rt.Renders()+1, rt.ID())

			start := time.Now()
			err := next(ctx, rt, logger)
			duration := time.Since(start)

			if err != nil {
				logger.Error("Middleware: Render %d failed after %v: %v",
					rt.Renders(), duration.Round(time.Millisecond), err)
			} else {
				logger.Info("Middleware: Render %d completed in %v with %d live IDs",
					rt.Renders(), duration.Round(time.Millisecond), rt.Store().Len())
			}

			return err
		}
	}
}

// TimeLimitMiddleware creates a middleware that enforces a time limit on a
// render. Views observe the limit through Frame.Context.
func TimeLimitMiddleware(limit time.Duration) Middleware {
	return func(next RenderFunc) RenderFunc {
		return func(ctx context.Context, rt *Runtime, logger Logger) error {
			// Create a context with timeout
			ctx, cancel := context.WithTimeout(ctx, limit)
			defer cancel()

			// Render with the timeout context
			return next(ctx, rt, logger)
		}
	}
}
