// Package ratelimit implements sliding-window rate limiting over a
// pluggable per-key timestamp store.
//
// The gateway uses it with the in-memory store and hashed client
// identifiers as keys: only events within now-window count toward the
// limit, denial results carry the exact instant the oldest counted
// event expires, and all state lives for the lifetime of the hosting
// process only.
//
// # Usage
//
//	store := ratelimit.NewMemoryStore()
//	limiter, err := ratelimit.NewSlidingWindow(store, 5, time.Hour)
//	if err != nil {
//	    // invalid configuration
//	}
//
//	res, err := limiter.Allow(ctx, hashedID)
//	if err == nil && !res.Allowed {
//	    retryAfter := res.RetryAfter()
//	    // deny the request
//	}
package ratelimit
