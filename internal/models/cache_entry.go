package models

import "time"

// CacheEntry is a stored provider response
type CacheEntry struct {
	Key       string
	Body      []byte
	FetchedAt time.Time
}

// Expired reports whether the entry is older than ttl. A zero ttl never expires.
func (e *CacheEntry) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(e.FetchedAt) > ttl
}
