package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/davidroman0O/gohooks"
	"github.com/davidroman0O/gohooks/store"
)

// Status is the state of a fetch.
type Status int

const (
	// StatusInitialized means the fetch has not been dispatched.
	StatusInitialized Status = iota
	// StatusLoading means a request is in flight.
	StatusLoading
	// StatusComplete means the response was received and decoded.
	StatusComplete
	// StatusFailed means the request or the decoding failed.
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusInitialized:
		return "initialized"
	case StatusLoading:
		return "loading"
	case StatusComplete:
		return "complete"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrFetchFailed wraps the reason of a failed fetch.
var ErrFetchFailed = errors.New("fetch failed")

// Fetcher retrieves the body behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches with GET requests.
type HTTPFetcher struct {
	Client *http.Client
}

// Fetch implements Fetcher.
func (h HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return do(h.Client, req)
}

// do sends req and returns the body of a 2xx response.
func do(client *http.Client, req *http.Request) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

type fetchState[T any] struct {
	URL    string
	Status Status
	Value  T
	Reason string
}

// FetchControl starts a fetch and reports its progress.
type FetchControl[T any] struct {
	state   store.State[fetchState[T]]
	rt      *gohooks.Runtime
	fetcher Fetcher
}

// Status returns the current status.
func (c FetchControl[T]) Status() Status {
	st, _ := c.state.Get()
	return st.Status
}

// Err returns the failure reason, or nil unless the status is StatusFailed.
func (c FetchControl[T]) Err() error {
	st, ok := c.state.Get()
	if !ok || st.Status != StatusFailed {
		return nil
	}
	return fmt.Errorf("%s: %w: %s", st.URL, ErrFetchFailed, st.Reason)
}

// Dispatch starts the request on a new goroutine. The result is written back
// through the runtime's dispatch queue, so it becomes visible on the render
// that follows RunPending. Dispatching while a request is in flight does
// nothing.
func (c FetchControl[T]) Dispatch(ctx context.Context) error {
	var (
		url     string
		started bool
	)
	err := c.state.Update(func(st *fetchState[T]) {
		if st.Status == StatusLoading {
			return
		}
		st.Status = StatusLoading
		st.Reason = ""
		url = st.URL
		started = true
	})
	if err != nil || !started {
		return err
	}

	go func() {
		value, err := fetchJSON[T](ctx, c.fetcher, url)
		c.rt.Dispatch(func() {
			_ = c.state.Update(func(st *fetchState[T]) {
				if err != nil {
					st.Status = StatusFailed
					st.Reason = err.Error()
					return
				}
				st.Status = StatusComplete
				st.Value = value
			})
		})
	}()
	return nil
}

func fetchJSON[T any](ctx context.Context, fetcher Fetcher, url string) (T, error) {
	var value T
	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(body, &value); err != nil {
		return value, fmt.Errorf("failed to decode response: %w", err)
	}
	return value, nil
}

// FetchOption configures UseFetch.
type FetchOption func(*fetchConfig)

type fetchConfig struct {
	fetcher Fetcher
}

// WithFetcher sets the Fetcher used by UseFetch. Without it UseFetch uses a
// Fetcher provided with gohooks.Provide, or an HTTPFetcher.
func WithFetcher(fetcher Fetcher) FetchOption {
	return func(c *fetchConfig) {
		c.fetcher = fetcher
	}
}

// UseFetch keeps the state of a JSON fetch of url. It returns the decoded
// value once the fetch completed. Nothing is requested until the control's
// Dispatch is called.
func UseFetch[T any](f *gohooks.Frame, url string, opts ...FetchOption) (T, bool, FetchControl[T]) {
	cfg := fetchConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fetcher == nil {
		if provided, ok := gohooks.Consume[Fetcher](f); ok {
			cfg.fetcher = provided
		} else {
			cfg.fetcher = HTTPFetcher{}
		}
	}

	var (
		st    fetchState[T]
		state store.State[fetchState[T]]
	)
	f.Call("fetch", func(f *gohooks.Frame) {
		st, state = gohooks.UseState(f, func() fetchState[T] {
			return fetchState[T]{URL: url}
		})
	})

	control := FetchControl[T]{state: state, rt: f.Runtime(), fetcher: cfg.fetcher}
	return st.Value, st.Status == StatusComplete, control
}
