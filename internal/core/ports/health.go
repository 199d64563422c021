package ports

import (
	"context"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
)

// CheckFunc probes a source. A nil error means the source is reachable.
type CheckFunc func(ctx context.Context) error

// HealthTracker aggregates per-source request outcomes into a health status.
//
//go:generate mockgen -source=health.go -destination=mocks/mock_health.go -package=mocks
type HealthTracker interface {
	// Register adds a source if it is unseen. Re-registering is a no-op.
	Register(name string, requiresAPIKey, apiKeyConfigured bool)

	// Configure registers a source or replaces the API-key flags of a known one.
	Configure(name string, requiresAPIKey, apiKeyConfigured bool)

	// RecordRequest records one outcome, registering the source if needed.
	RecordRequest(name string, success bool, responseTime time.Duration, errMsg string)

	// RunCheck executes check bounded by timeout and records its outcome.
	RunCheck(ctx context.Context, name string, check CheckFunc, timeout time.Duration) domain.CheckResult

	// Status returns a copy of the named source's record.
	Status(name string) (domain.SourceHealth, bool)

	// AllStatuses returns copies of every record keyed by name.
	AllStatuses() map[string]domain.SourceHealth

	// HealthySources returns the sorted names of healthy sources.
	HealthySources() []string

	// UnhealthySources returns the sorted names of unhealthy sources.
	UnhealthySources() []string

	// Save persists the current snapshot.
	Save() error
}
