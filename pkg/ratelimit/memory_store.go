package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store. It is deliberately non-durable:
// a fresh process starts with an empty table, which is the intended
// behavior for a stateless gateway. Do not put anything behind it that
// must survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	mu         sync.Mutex
	timestamps []time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
	}
}

// RecordIfAllowed implements Store with a per-key critical section:
// prune, check, and append happen under the key's own lock so two
// concurrent checks for the same identifier cannot both claim the last
// slot.
func (s *MemoryStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, windowDur time.Duration, limit int) (bool, int, time.Time, error) {
	s.mu.Lock()
	w, ok := s.windows[key]
	if !ok {
		w = &window{timestamps: make([]time.Time, 0, limit)}
		s.windows[key] = w
	}
	s.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := now.Add(-windowDur)
	valid := w.timestamps[:0]
	for _, ts := range w.timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	w.timestamps = valid

	allowed := len(w.timestamps) < limit
	if allowed {
		w.timestamps = append(w.timestamps, now)
	}

	var oldest time.Time
	if len(w.timestamps) > 0 {
		oldest = w.timestamps[0]
	}

	return allowed, len(w.timestamps), oldest, nil
}

// Delete removes the given key from the store.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}
