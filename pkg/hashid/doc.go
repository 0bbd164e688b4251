// Package hashid derives non-reversible bucket keys from client network
// addresses. The gateway never stores or logs a raw address; every place
// that needs a per-client key (rate limiting, denial logs) goes through
// Hash first.
package hashid
