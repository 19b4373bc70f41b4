// Package cache provides time-bounded memoization of expensive aggregate
// calls, keyed by operation name plus canonicalized arguments.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the storage contract shared by all backends. A read past TTL is
// a miss, never a stale hit. Concurrent writers for the same key race with
// last-write-wins semantics; recomputation is idempotent within the TTL
// window, so no stricter coordination is needed.
type Cache interface {
	// Get returns the stored value and true on a live hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// PurgeExpired removes expired entries, returning how many were dropped.
	PurgeExpired(ctx context.Context) (int, error)
	Close() error
}

// Key builds a deterministic cache key from an operation name and its
// canonicalized arguments: SHA-256 over "op|arg1|arg2|...".
func Key(operation string, args ...string) string {
	var b strings.Builder
	b.WriteString(operation)
	for _, a := range args {
		b.WriteByte('|')
		b.WriteString(strings.ToLower(strings.TrimSpace(a)))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
