package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Do is the memoization wrapper around an expensive computation: on a live
// hit the stored value is returned and compute never runs; otherwise compute
// runs and its result is stored under key for ttl. A value that fails to
// deserialize counts as a miss (the corrupt entry is dropped best-effort),
// never as an error. A nil cache degrades to calling compute directly.
//
// The returned bool reports whether the value came from the cache.
func Do[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, bool, error) {
	var zero T
	if c == nil {
		v, err := compute(ctx)
		return v, false, err
	}

	raw, hit, err := c.Get(ctx, key)
	if err != nil {
		// Backend trouble reads as a miss; the computation still works.
		zap.L().Warn("cache read failed", zap.String("key", shortKey(key)), zap.Error(err))
	} else if hit {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, true, nil
		}
		// Corrupt entry: drop and recompute.
		zap.L().Warn("cache entry corrupt, recomputing", zap.String("key", shortKey(key)))
		_ = c.Delete(ctx, key)
	}

	v, err := compute(ctx)
	if err != nil {
		return zero, false, err
	}

	raw, err = json.Marshal(v)
	if err != nil {
		// Unserializable results are returned uncached.
		zap.L().Warn("cache marshal failed", zap.String("key", shortKey(key)), zap.Error(err))
		return v, false, nil
	}
	if err := c.Set(ctx, key, raw, ttl); err != nil {
		zap.L().Warn("cache write failed", zap.String("key", shortKey(key)), zap.Error(err))
	}
	return v, false, nil
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
