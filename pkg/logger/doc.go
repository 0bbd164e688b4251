// Package logger builds configured slog.Logger instances and provides
// attribute helpers for the gateway's non-PHI logging discipline: log
// records may carry hashed identifiers, declared origins, and error
// kinds, never submitted field values.
package logger
