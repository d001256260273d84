package gohooks

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"github.com/davidroman0O/gohooks/store"
	"github.com/davidroman0O/gohooks/topo"
)

// Runtime renders a View and owns the store holding its state.
//
// Renders must happen on one goroutine at a time, the owning goroutine.
// Other goroutines hand work to it with Dispatch.
type Runtime struct {
	id   string
	seed string
	view View

	store      *store.Store
	storeOpts  []store.Option
	middleware []Middleware
	logger     Logger

	rendering atomic.Bool
	renders   atomic.Uint64

	dispatchMu deadlock.Mutex
	queue      []func()
	wake       chan struct{}
}

// Option is a function that configures a Runtime
type Option func(*Runtime)

// WithMiddleware adds middleware to the runtime
func WithMiddleware(middleware ...Middleware) Option {
	return func(r *Runtime) {
		r.middleware = append(r.middleware, middleware...)
	}
}

// WithLogger sets the logger passed to middleware and views
func WithLogger(logger Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithSeed sets the seed of the root scope. Two runtimes with the same seed
// and view derive the same IDs.
func WithSeed(seed string) Option {
	return func(r *Runtime) {
		r.seed = seed
	}
}

// WithStore makes the runtime use an existing store.
func WithStore(s *store.Store) Option {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithStoreOptions configures the store created by the runtime. It has no
// effect together with WithStore.
func WithStoreOptions(opts ...store.Option) Option {
	return func(r *Runtime) {
		r.storeOpts = append(r.storeOpts, opts...)
	}
}

// New creates a runtime for view with the given options
func New(view View, opts ...Option) *Runtime {
	id := uuid.NewString()
	r := &Runtime{
		id:         id,
		seed:       "root",
		view:       view,
		middleware: []Middleware{},
		logger:     NewDefaultLogger(),
		wake:       make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.store == nil {
		r.store = store.NewStore(r.storeOpts...)
	}
	if r.logger == nil {
		r.logger = NewDefaultLogger()
	}

	return r
}

// Use adds middleware to the runtime's middleware chain
func (r *Runtime) Use(middleware ...Middleware) {
	r.middleware = append(r.middleware, middleware...)
}

// ID returns the unique identifier of this runtime.
func (r *Runtime) ID() string {
	return r.id
}

// Seed returns the seed of the root scope.
func (r *Runtime) Seed() string {
	return r.seed
}

// Store returns the store holding the view's state.
func (r *Runtime) Store() *store.Store {
	return r.store
}

// Logger returns the runtime's logger.
func (r *Runtime) Logger() Logger {
	return r.logger
}

// Renders returns how many renders have started.
func (r *Runtime) Renders() uint64 {
	return r.renders.Load()
}

// Render runs the view once through the middleware chain.
//
// Every render is one GC epoch of the store: state not reached by this render
// is purged before Render returns, on every exit path. A panic inside the view
// is recovered and returned as a *RenderError.
func (r *Runtime) Render(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Build the middleware chain
	var handler RenderFunc = r.render

	// Apply middleware in reverse order
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}

	return handler(ctx, r, r.logger)
}

// render is the core render logic
func (r *Runtime) render(ctx context.Context, _ *Runtime, logger Logger) (err error) {
	if !r.rendering.CompareAndSwap(false, true) {
		return ErrRenderInProgress
	}
	defer r.rendering.Store(false)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render not started: %w", err)
	}

	n := r.renders.Add(1)
	logger.Debug("Starting render %d", n)

	r.store.ResetUnseen()
	root := topo.Root(r.seed)

	defer func() {
		purged := r.store.Purge()
		logger.Debug("Render %d purged %d IDs, %d live", n, purged, r.store.Len())
	}()

	defer func() {
		if rec := recover(); rec != nil {
			path := root.PanicPath()
			if path == "" {
				path = root.Path()
			}
			err = newRenderError(path, rec)
			logger.Error("Render %d recovered: %v", n, err)
		}
	}()

	if err := r.view(newFrame(ctx, r, root, logger)); err != nil {
		return fmt.Errorf("render %d failed: %w", n, err)
	}
	return nil
}
