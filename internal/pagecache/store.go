package pagecache

import (
	"errors"
	"sync"
	"time"
)

// DefaultTTL is the entry lifetime used when NewStore gets a non-positive TTL.
const DefaultTTL = 30 * time.Second

// Common cache errors.
var (
	ErrNotFound = errors.New("cache entry not found")
	ErrExpired  = errors.New("cache entry expired")
)

// Store is a concurrency-safe in-memory map of entries with a shared TTL.
type Store[K comparable, V any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[K]Entry[V]
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) { o.now = now }
}

// NewStore creates an empty store.
func NewStore[K comparable, V any](ttl time.Duration, opts ...StoreOption) *Store[K, V] {
	o := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[K, V]{ttl: ttl, now: o.now, entries: make(map[K]Entry[V])}
}

// Get returns the value for key. Expired entries are removed and reported
// as ErrExpired.
func (s *Store[K, V]) Get(key K) (V, error) {
	var zero V
	now := s.now()

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, ErrNotFound
	}
	if entry.ExpiredAt(now) {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur.ExpiredAt(now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, ErrExpired
	}
	return entry.Value, nil
}

// Set stores v under key, replacing any previous entry.
func (s *Store[K, V]) Set(key K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = newEntry(v, s.now(), s.ttl)
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear removes every entry.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
}

// CleanupExpired removes expired entries and returns how many were dropped.
func (s *Store[K, V]) CleanupExpired() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, e := range s.entries {
		if e.ExpiredAt(now) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored entries, expired ones included.
func (s *Store[K, V]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// TTL returns the entry lifetime.
func (s *Store[K, V]) TTL() time.Duration {
	return s.ttl
}
