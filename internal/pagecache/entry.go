package pagecache

import "time"

// Entry is one cached value with its expiry.
type Entry[V any] struct {
	Value     V
	CreatedAt time.Time
	ExpiresAt time.Time
}

func newEntry[V any](v V, now time.Time, ttl time.Duration) Entry[V] {
	return Entry[V]{Value: v, CreatedAt: now, ExpiresAt: now.Add(ttl)}
}

// ExpiredAt reports whether the entry has expired at now.
func (e Entry[V]) ExpiredAt(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Age returns how long the entry has been stored at now.
func (e Entry[V]) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}
