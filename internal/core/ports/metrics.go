package ports

import (
	"io"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
)

// CacheOutcome labels a cache lookup.
type CacheOutcome string

const (
	// CacheHit is a lookup served from the cache.
	CacheHit CacheOutcome = "hit"
	// CacheMiss is a lookup with no stored entry.
	CacheMiss CacheOutcome = "miss"
	// CacheExpired is a lookup that found and removed an expired entry.
	CacheExpired CacheOutcome = "expired"
	// CacheCorrupt is a lookup that found an unreadable entry.
	CacheCorrupt CacheOutcome = "corrupt"
)

// GuardResult labels how a guarded call was answered.
type GuardResult string

const (
	// GuardCached is a call answered from the cache.
	GuardCached GuardResult = "cached"
	// GuardFetched is a call that executed the wrapped operation.
	GuardFetched GuardResult = "fetched"
	// GuardShared is a call that joined an identical in-flight execution.
	GuardShared GuardResult = "shared"
	// GuardFailed is a call whose wrapped operation returned an error.
	GuardFailed GuardResult = "failed"
	// GuardSkipped is a call refused because its source is unconfigured.
	GuardSkipped GuardResult = "skipped"
)

// Metrics records operational counters for the cache and the tracker.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// CacheLookup counts one Get.
	CacheLookup(outcome CacheOutcome)
	// CacheStored counts one successful Set.
	CacheStored()
	// CacheSwept counts entries removed by a sweep.
	CacheSwept(n int)
	// CacheStats publishes the on-disk summary of the cache.
	CacheStats(stats domain.CacheStats)
	// StorageError counts one swallowed I/O failure for op.
	StorageError(op string)
	// SourceRequest observes one recorded request.
	SourceRequest(source string, success bool, responseTime time.Duration)
	// SourceHealth publishes the current record of a source.
	SourceHealth(h domain.SourceHealth)
	// GuardCall counts one guarded call for source.
	GuardCall(source string, result GuardResult)
	// WriteText writes the exposition of every metric to w.
	WriteText(w io.Writer) error
}
