// Package helpers contains hooks built only on the public gohooks and store
// APIs: two-way binding between sibling scopes, a fetch state machine, a list
// loaded from a GraphQL query and form state with validators.
package helpers
