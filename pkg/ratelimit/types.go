package ratelimit

import (
	"context"
	"time"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed indicates whether the request may proceed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the oldest counted request falls out of the
	// sliding window, freeing one slot.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request would be
// allowed. Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter is the interface the gateway depends on.
type Limiter interface {
	// Allow checks whether one request is allowed for the given key,
	// consuming a slot when it is.
	Allow(ctx context.Context, key string) (*Result, error)

	// Reset clears all recorded requests for the given key.
	Reset(ctx context.Context, key string) error
}

// Store holds per-key request timestamps. Implementations must make
// RecordIfAllowed atomic per key so concurrent checks for the same
// identifier cannot undercount; serialization across different keys is
// not required.
type Store interface {
	// RecordIfAllowed prunes timestamps older than now-window, appends
	// now when fewer than limit remain, and reports whether the append
	// happened along with the post-call count and the oldest timestamp
	// still inside the window. oldest is the zero time when the window
	// is empty.
	RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (allowed bool, count int, oldest time.Time, err error)

	// Delete removes the given key from the store.
	Delete(ctx context.Context, key string) error
}
