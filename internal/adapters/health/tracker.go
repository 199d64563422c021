// Package health aggregates per-source request outcomes into health states.
package health

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HealthTracker = (*Tracker)(nil)

// Tracker implements ports.HealthTracker.
//
// The map of sources is guarded by mu. Each source carries its own mutex, so
// updates to one source are serialized without blocking the others.
// Snapshot writes are serialized by saveMu.
type Tracker struct {
	mu      sync.RWMutex
	sources map[string]*sourceState

	saveMu   sync.Mutex
	snapshot *SnapshotStore

	defaultTimeout time.Duration
	logger         ports.Logger
	metrics        ports.Metrics
}

type sourceState struct {
	mu     sync.Mutex
	health domain.SourceHealth
}

// NewTracker creates a Tracker seeded from snapshot. A missing snapshot
// starts empty; an unreadable one is reported and also starts empty.
func NewTracker(snapshot *SnapshotStore, defaultTimeout time.Duration, logger ports.Logger, metrics ports.Metrics) *Tracker {
	if defaultTimeout <= 0 {
		defaultTimeout = domain.DefaultCheckTimeout
	}

	t := &Tracker{
		sources:        make(map[string]*sourceState),
		snapshot:       snapshot,
		defaultTimeout: defaultTimeout,
		logger:         logger,
		metrics:        metrics,
	}

	records, err := snapshot.Load()
	if err != nil {
		logger.Warn("starting with empty health state: " + err.Error())
	}

	now := time.Now()
	for name, h := range records {
		h.Status = domain.DeriveStatus(h, now)
		t.sources[name] = &sourceState{health: h}
	}
	if len(records) > 0 {
		logger.Debug("loaded health state from " + snapshot.Path())
	}

	return t
}

// Register adds a source if it is unseen. Re-registering is a no-op.
func (t *Tracker) Register(name string, requiresAPIKey, apiKeyConfigured bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sources[name]; ok {
		return
	}
	t.sources[name] = &sourceState{health: domain.NewSourceHealth(name, requiresAPIKey, apiKeyConfigured)}
}

// Configure registers name or, when it is already known, replaces its API-key
// flags with the given ones. The status is re-derived from the new flags.
func (t *Tracker) Configure(name string, requiresAPIKey, apiKeyConfigured bool) {
	state := t.state(name)

	state.mu.Lock()
	state.health.RequiresAPIKey = requiresAPIKey
	state.health.APIKeyConfigured = apiKeyConfigured
	state.health.Status = domain.DeriveStatus(state.health, now())
	state.mu.Unlock()
}

// RecordRequest records one outcome, registering the source if needed. The
// snapshot is written every domain.PersistEvery requests of a source.
func (t *Tracker) RecordRequest(name string, success bool, responseTime time.Duration, errMsg string) {
	state := t.state(name)

	state.mu.Lock()
	state.health.Record(success, responseTime, errMsg, now())
	total := state.health.TotalRequests
	current := state.health.Clone()
	state.mu.Unlock()

	t.metrics.SourceRequest(name, success, responseTime)
	t.metrics.SourceHealth(current)

	if total%domain.PersistEvery == 0 {
		if err := t.Save(); err != nil {
			t.logger.Error(err)
		}
	}
}

// RunCheck executes check in its own goroutine, bounded by timeout, and
// records the outcome. The timeout is enforced even when check ignores its
// context. A panic inside check is reported as a failed check.
func (t *Tracker) RunCheck(ctx context.Context, name string, check ports.CheckFunc, timeout time.Duration) domain.CheckResult {
	if timeout <= 0 {
		timeout = t.defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)

	go func() {
		defer zerr.Defer(func(err error) {
			done <- zerr.Wrap(err, domain.ErrCheckPanicked.Error())
		})
		done <- check(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = zerr.With(domain.ErrCheckTimeout, "timeout", timeout.String())
		} else {
			err = zerr.Wrap(ctx.Err(), "health check cancelled")
		}
	}

	result := domain.CheckResult{
		Success:      err == nil,
		ResponseTime: time.Since(start),
		Timestamp:    now(),
	}
	if err != nil {
		result.Error = err.Error()
	}

	t.RecordRequest(name, result.Success, result.ResponseTime, result.Error)
	return result
}

// Status returns a copy of the named record with its status derived at now.
func (t *Tracker) Status(name string) (domain.SourceHealth, bool) {
	t.mu.RLock()
	state, ok := t.sources[name]
	t.mu.RUnlock()
	if !ok {
		return domain.SourceHealth{}, false
	}
	return state.read(time.Now()), true
}

// AllStatuses returns copies of every record keyed by name.
func (t *Tracker) AllStatuses() map[string]domain.SourceHealth {
	t.mu.RLock()
	states := make(map[string]*sourceState, len(t.sources))
	for name, state := range t.sources {
		states[name] = state
	}
	t.mu.RUnlock()

	at := time.Now()
	out := make(map[string]domain.SourceHealth, len(states))
	for name, state := range states {
		out[name] = state.read(at)
	}
	return out
}

// HealthySources returns the sorted names of healthy sources.
func (t *Tracker) HealthySources() []string {
	return t.withStatus(domain.StatusHealthy)
}

// UnhealthySources returns the sorted names of unhealthy sources.
func (t *Tracker) UnhealthySources() []string {
	return t.withStatus(domain.StatusUnhealthy)
}

// Save writes the current records to the snapshot.
func (t *Tracker) Save() error {
	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	return t.snapshot.Write(t.AllStatuses())
}

// Close writes a final snapshot.
func (t *Tracker) Close() error {
	return t.Save()
}

func (t *Tracker) withStatus(status domain.Status) []string {
	names := make([]string, 0)
	for name, h := range t.AllStatuses() {
		if h.Status == status {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func (t *Tracker) state(name string) *sourceState {
	t.mu.RLock()
	state, ok := t.sources[name]
	t.mu.RUnlock()
	if ok {
		return state
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if state, ok := t.sources[name]; ok {
		return state
	}
	state = &sourceState{health: domain.NewSourceHealth(name, false, false)}
	t.sources[name] = state
	return state
}

func (s *sourceState) read(at time.Time) domain.SourceHealth {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.health.Clone()
	h.Status = domain.DeriveStatus(h, at)
	return h
}

// now returns the current wall-clock time in UTC without a monotonic reading,
// so persisted timestamps round-trip exactly.
func now() time.Time {
	return time.Now().Round(0).UTC()
}
