// Package nop provides a no-op cache store used when caching is disabled
// or the backend is unreachable at startup.
package nop

import (
	"context"
	"time"

	"github.com/primefold/ragd/pkg/cache"
)

// Store is a cache that never hits and never fails.
type Store struct{}

// NewStore creates a new no-op cache store.
func NewStore() *Store {
	return &Store{}
}

// Get always reports a miss.
func (s *Store) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, nil
}

// Set discards the value.
func (s *Store) Set(_ context.Context, _, _ string, _ time.Duration) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

var _ cache.Store = (*Store)(nil)
