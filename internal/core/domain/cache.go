// Package domain contains the core types of the resilience layer.
package domain

import (
	"encoding/json"
	"math"
	"time"
)

// CacheEntry is the persisted form of one cached response.
type CacheEntry struct {
	// Value is the JSON-encoded payload.
	Value json.RawMessage `json:"value"`
	// CachedAt is the write time in seconds since the Unix epoch.
	CachedAt float64 `json:"cached_at"`
	// ExpiresAt is the expiry time in seconds since the Unix epoch.
	ExpiresAt float64 `json:"expires_at"`
	// Checksum is the hex xxhash64 of Value.
	Checksum string `json:"checksum"`
}

// NewCacheEntry builds an entry written at now that lives for ttl.
func NewCacheEntry(value json.RawMessage, checksum string, now time.Time, ttl time.Duration) CacheEntry {
	cachedAt := EpochSeconds(now)
	expiresAt := cachedAt + ttl.Seconds()
	if expiresAt <= cachedAt {
		// Sub-microsecond TTLs vanish in float64 at current epoch magnitudes.
		expiresAt = math.Nextafter(cachedAt, math.Inf(1))
	}
	return CacheEntry{
		Value:     value,
		CachedAt:  cachedAt,
		ExpiresAt: expiresAt,
		Checksum:  checksum,
	}
}

// ValidAt reports whether the entry may be served at now (now <= expires_at).
func (e CacheEntry) ValidAt(now time.Time) bool {
	return EpochSeconds(now) <= e.ExpiresAt
}

// ExpiredAt reports whether a sweep at now should remove the entry (expires_at < now).
func (e CacheEntry) ExpiredAt(now time.Time) bool {
	return e.ExpiresAt < EpochSeconds(now)
}

// WellFormed reports whether the entry honours expires_at > cached_at.
func (e CacheEntry) WellFormed() bool {
	return e.ExpiresAt > e.CachedAt
}

// CacheStats summarizes the contents of the response cache.
type CacheStats struct {
	Entries int   `json:"entries"`
	Expired int   `json:"expired"`
	Corrupt int   `json:"corrupt"`
	Bytes   int64 `json:"bytes"`
}

// Named holds keyword-style call arguments.
// Its keys are canonicalized in sorted order when fingerprinted, so
// insertion order never affects the resulting key.
type Named map[string]any

// EpochSeconds converts t to fractional seconds since the Unix epoch.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
