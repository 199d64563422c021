// Package guard wraps fetch operations with cache-then-execute-then-record
// semantics.
package guard

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Guard holds the collaborators shared by every wrapped operation.
type Guard struct {
	cache         ports.ResponseCache
	tracker       ports.HealthTracker
	fingerprinter ports.Fingerprinter
	logger        ports.Logger
	tracer        ports.Tracer
	metrics       ports.Metrics

	flight singleflight.Group
}

// New creates a Guard.
func New(
	cache ports.ResponseCache,
	tracker ports.HealthTracker,
	fingerprinter ports.Fingerprinter,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *Guard {
	return &Guard{
		cache:         cache,
		tracker:       tracker,
		fingerprinter: fingerprinter,
		logger:        logger,
		tracer:        tracer,
		metrics:       metrics,
	}
}

type settings struct {
	ttl       time.Duration
	cacheable func(any) bool
}

// Option customizes a wrapped operation.
type Option func(*settings)

// WithTTL stores results for d instead of the cache default.
func WithTTL(d time.Duration) Option {
	return func(s *settings) { s.ttl = d }
}

// WithCacheable adds a predicate a result must pass before it is stored.
// Nil and empty results are never stored regardless of the predicate.
func WithCacheable[R any](fn func(R) bool) Option {
	return func(s *settings) {
		s.cacheable = func(v any) bool {
			r, ok := v.(R)
			return ok && fn(r)
		}
	}
}

// Wrap returns fn guarded for source. Calls are keyed by the fingerprint of
// operation and the argument. A cached result is returned without calling
// fn; otherwise identical concurrent calls share one execution whose outcome
// is recorded against source. Errors from fn are returned unchanged.
func Wrap[A, R any](
	g *Guard,
	source, operation string,
	fn func(context.Context, A) (R, error),
	opts ...Option,
) func(context.Context, A) (R, error) {
	cfg := settings{ttl: g.cache.DefaultTTL()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx context.Context, arg A) (R, error) {
		ctx, span := g.tracer.Start(ctx, "guard."+operation)
		defer span.End()
		span.SetAttribute("source", source)

		var zero R

		if h, ok := g.tracker.Status(source); ok && h.Status == domain.StatusUnconfigured {
			err := zerr.With(zerr.Wrap(domain.ErrSourceUnconfigured, "skipped "+operation), "source", source)
			span.RecordError(err)
			g.metrics.GuardCall(source, ports.GuardSkipped)
			g.logger.Debug("skipping " + operation + ": " + source + " is unconfigured")
			return zero, err
		}

		key, err := g.fingerprinter.Fingerprint(operation, arg)
		if err != nil {
			g.logger.Error(zerr.Wrap(err, "running "+operation+" uncached"))
			span.SetAttribute("cache.hit", false)
			result, err := execute(ctx, g, source, fn, arg)
			g.finish(span, source, err, false)
			return result, err
		}

		if raw, ok := g.cache.Get(key); ok {
			var cached R
			if err := json.Unmarshal(raw, &cached); err == nil {
				span.SetAttribute("cache.hit", true)
				g.metrics.GuardCall(source, ports.GuardCached)
				return cached, nil
			}
			g.logger.Warn("cached result of " + operation + " does not decode; fetching again")
		}
		span.SetAttribute("cache.hit", false)

		leader := false
		v, err, _ := g.flight.Do(key, func() (any, error) {
			leader = true
			result, err := execute(ctx, g, source, fn, arg)
			if err == nil && storable(result, cfg.cacheable) {
				g.cache.Set(key, result, cfg.ttl)
			}
			return result, err
		})
		g.finish(span, source, err, !leader)

		if err != nil {
			return zero, err
		}
		result, _ := v.(R)
		return result, nil
	}
}

// execute runs fn once and records its outcome against source.
func execute[A, R any](ctx context.Context, g *Guard, source string, fn func(context.Context, A) (R, error), arg A) (R, error) {
	start := time.Now()
	result, err := fn(ctx, arg)
	latency := time.Since(start)

	msg := ""
	if err != nil {
		msg = err.Error()
	}
	g.tracker.RecordRequest(source, err == nil, latency, msg)

	return result, err
}

func (g *Guard) finish(span ports.Span, source string, err error, shared bool) {
	switch {
	case shared:
		g.metrics.GuardCall(source, ports.GuardShared)
	case err != nil:
		g.metrics.GuardCall(source, ports.GuardFailed)
	default:
		g.metrics.GuardCall(source, ports.GuardFetched)
	}
	if err != nil {
		span.RecordError(err)
	}
}

// storable reports whether v may be cached: it must be non-nil, not an
// empty string, array, map or slice, and pass the optional predicate.
func storable(v any, cacheable func(any) bool) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		if rv.Len() == 0 {
			return false
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
	default:
	}
	if cacheable != nil {
		return cacheable(v)
	}
	return true
}
