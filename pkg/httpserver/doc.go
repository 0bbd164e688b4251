// Package httpserver wraps net/http.Server with functional options,
// signal handling, and bounded graceful shutdown.
package httpserver
