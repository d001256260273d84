package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/davidroman0O/gohooks"
)

// ErrGraphQL is returned when a GraphQL response carries errors.
var ErrGraphQL = errors.New("graphql error")

// GraphQLFetcher posts a query to a GraphQL endpoint.
type GraphQLFetcher struct {
	Client    *http.Client
	Query     string
	Variables map[string]interface{}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLErrors struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Fetch implements Fetcher. Responses with a non-empty errors list fail with
// ErrGraphQL.
func (g GraphQLFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	payload, err := json.Marshal(graphQLRequest{Query: g.Query, Variables: g.Variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := do(g.Client, req)
	if err != nil {
		return nil, err
	}

	var failed graphQLErrors
	if err := json.Unmarshal(body, &failed); err == nil && len(failed.Errors) > 0 {
		messages := make([]string, len(failed.Errors))
		for i, e := range failed.Errors {
			messages[i] = e.Message
		}
		return nil, fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(messages, "; "))
	}
	return body, nil
}

type graphQLResponse[I any] struct {
	Data map[string][]I `json:"data"`
}

// GraphQLListControl drives a list loaded by UseGraphQLList.
type GraphQLListControl[I any] struct {
	list  gohooks.ListControl[I]
	fetch FetchControl[graphQLResponse[I]]
}

// List returns the control of the loaded list.
func (c GraphQLListControl[I]) List() gohooks.ListControl[I] {
	return c.list
}

// Items returns a copy of the list.
func (c GraphQLListControl[I]) Items() []I {
	return c.list.Items()
}

// Dispatch sends the query. See FetchControl.Dispatch.
func (c GraphQLListControl[I]) Dispatch(ctx context.Context) error {
	return c.fetch.Dispatch(ctx)
}

// Status returns the status of the query.
func (c GraphQLListControl[I]) Status() Status {
	return c.fetch.Status()
}

// Err returns why the query failed, if it did.
func (c GraphQLListControl[I]) Err() error {
	return c.fetch.Err()
}

// UseGraphQLList keeps a list filled from the array found under
// data.<container> in the response to query. The list starts empty and is
// filled once, on the first render after the response arrived; later edits go
// through the returned control and are never overwritten by the response.
//
// WithFetcher replaces the GraphQLFetcher built from query.
func UseGraphQLList[I any](f *gohooks.Frame, url, query, container string, opts ...FetchOption) ([]I, GraphQLListControl[I]) {
	cfg := fetchConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fetcher == nil {
		cfg.fetcher = GraphQLFetcher{Query: query}
	}

	var (
		items   []I
		control GraphQLListControl[I]
	)
	f.Call("graphql_list", func(f *gohooks.Frame) {
		var list gohooks.ListControl[I]
		items, list = gohooks.UseList(f, func() []I { return nil })

		resp, ok, fetch := UseFetch[graphQLResponse[I]](f, url, WithFetcher(cfg.fetcher))
		control = GraphQLListControl[I]{list: list, fetch: fetch}
		if !ok {
			return
		}

		gohooks.DoOnce(f, func() {
			loaded, found := resp.Data[container]
			if !found {
				f.Logger().Warn("graphql list: no %q in response data", container)
				return
			}
			for _, item := range loaded {
				if err := list.Push(item); err != nil {
					f.Logger().Warn("graphql list: %v", err)
					return
				}
			}
		})
		items = list.Items()
	})

	return items, control
}
