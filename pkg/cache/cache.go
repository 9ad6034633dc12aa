// Package cache provides the answer cache used by the query engine.
//
// The cache is a capability: the engine always holds a Store and never
// nil-checks it. Deployments without a reachable backend get the nop
// implementation, which turns every read into a miss and every write into
// a no-op.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"
)

// keyPrefix namespaces answer entries in the backing store.
const keyPrefix = "rag:"

// Key derives the cache key for a query: a fixed prefix plus the hex MD5
// digest of the exact query bytes. No normalization is applied, so two
// queries differing only in case or whitespace produce independent keys.
func Key(query string) string {
	sum := md5.Sum([]byte(query))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Store is a key/value store with per-entry expiry.
type Store interface {
	// Get returns the value for key and whether it was present. A missing
	// or expired entry is (_, false, nil); errors are reserved for backend
	// failures.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Close releases any resources held by the store.
	Close() error
}
