package gohooks

import (
	"context"
	"errors"
	"fmt"
)

// Dispatch schedules fn to run on the goroutine that owns the runtime, the
// next time it calls RunPending or while it runs Loop. It is safe to call
// from any goroutine. It returns false if fn is nil.
func (r *Runtime) Dispatch(fn func()) bool {
	if fn == nil {
		return false
	}

	r.dispatchMu.Lock()
	r.queue = append(r.queue, fn)
	r.dispatchMu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return true
}

// Pending returns how many dispatched callbacks are waiting.
func (r *Runtime) Pending() int {
	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()

	return len(r.queue)
}

func (r *Runtime) drainDispatchQueue() []func() {
	r.dispatchMu.Lock()
	callbacks := r.queue
	r.queue = nil
	r.dispatchMu.Unlock()
	return callbacks
}

// RunPending runs every dispatched callback in order and renders once if any
// ran. Callbacks dispatched while it runs wait for the next call. A panicking
// callback does not stop the others; its panic is returned as an error.
func (r *Runtime) RunPending(ctx context.Context) (int, error) {
	callbacks := r.drainDispatchQueue()
	if len(callbacks) == 0 {
		return 0, nil
	}

	var errs []error
	for i, cb := range callbacks {
		if err := r.runCallback(cb); err != nil {
			r.logger.Error("Dispatched callback %d/%d failed: %v", i+1, len(callbacks), err)
			errs = append(errs, err)
		}
	}

	if err := r.Render(ctx); err != nil {
		errs = append(errs, err)
	}
	return len(callbacks), errors.Join(errs...)
}

func (r *Runtime) runCallback(cb func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("dispatched callback panicked: %v", rec)
		}
	}()
	cb()
	return nil
}

// Loop processes dispatched callbacks as they arrive until ctx is done. It
// returns ctx.Err() on cancellation, or the first error from RunPending.
func (r *Runtime) Loop(ctx context.Context) error {
	for {
		// Callbacks queued before Loop started have already signalled wake.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.wake:
			if _, err := r.RunPending(ctx); err != nil {
				return fmt.Errorf("loop: %w", err)
			}
		}
	}
}
