package ports

import (
	"encoding/json"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
)

// ResponseCache defines a keyed, TTL-governed store of call results.
// Storage failures never surface to callers; the cache degrades to always-miss.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ResponseCache interface {
	// Get returns the stored value if an entry exists and has not expired.
	// An expired entry is deleted as a side effect.
	Get(key string) (json.RawMessage, bool)

	// Set stores value under key for ttl, replacing any previous entry.
	// A ttl <= 0 removes the entry instead.
	Set(key string, value any, ttl time.Duration)

	// DefaultTTL returns the TTL applied when a caller does not choose one.
	DefaultTTL() time.Duration

	// Clear removes every entry.
	Clear()

	// Sweep removes every expired entry and returns how many were removed.
	Sweep() int

	// Stats summarizes the stored entries.
	Stats() domain.CacheStats
}
