package guard_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/vigil/internal/adapters/cache"
	"go.trai.ch/vigil/internal/adapters/fingerprint"
	"go.trai.ch/vigil/internal/adapters/health"
	"go.trai.ch/vigil/internal/adapters/metrics"
	"go.trai.ch/vigil/internal/adapters/telemetry"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/vigil/internal/core/ports/mocks"
	"go.trai.ch/vigil/internal/engine/guard"
	"go.uber.org/mock/gomock"
)

type quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

type fixture struct {
	guard   *guard.Guard
	cache   *cache.Store
	tracker *health.Tracker
	metrics *metrics.Registry
	spans   *tracetest.SpanRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	m := metrics.New()
	store := cache.NewStore(filepath.Join(dir, "cache"), time.Hour, log, m)
	tracker := health.NewTracker(health.NewSnapshotStore(filepath.Join(dir, domain.SnapshotFileName)), 0, log, m)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")

	return &fixture{
		guard:   guard.New(store, tracker, fingerprint.NewHasher(), log, tracer, m),
		cache:   store,
		tracker: tracker,
		metrics: m,
		spans:   sr,
	}
}

// counting returns a fetch function that counts its invocations.
func counting[A, R any](calls *atomic.Int32, fn func(A) (R, error)) func(context.Context, A) (R, error) {
	return func(_ context.Context, arg A) (R, error) {
		calls.Add(1)
		return fn(arg)
	}
}

func TestWrap_IdenticalArgsCallOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var calls atomic.Int32
	get := guard.Wrap(f.guard, "feed-a", "quote", counting(&calls, func(symbol string) (quote, error) {
		return quote{Symbol: symbol, Price: 187.5}, nil
	}))

	first, err := get(context.Background(), "AAPL")
	require.NoError(t, err)
	second, err := get(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, quote{Symbol: "AAPL", Price: 187.5}, second)

	h, ok := f.tracker.Status("feed-a")
	require.True(t, ok)
	assert.Equal(t, int64(1), h.TotalRequests)
	assert.Equal(t, int64(1), h.SuccessCount)

	expected := `
# HELP vigil_guard_calls_total Total guarded calls by source and result
# TYPE vigil_guard_calls_total counter
vigil_guard_calls_total{result="cached",source="feed-a"} 1
vigil_guard_calls_total{result="fetched",source="feed-a"} 1
`
	require.NoError(t, testutil.GatherAndCompare(f.metrics.Gatherer(), strings.NewReader(expected), "vigil_guard_calls_total"))
}

func TestWrap_DistinctArgsCallEach(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var calls atomic.Int32
	get := guard.Wrap(f.guard, "feed-a", "quote", counting(&calls, func(symbol string) (quote, error) {
		return quote{Symbol: symbol}, nil
	}))

	for _, symbol := range []string{"AAPL", "MSFT", "AAPL", "MSFT"} {
		got, err := get(context.Background(), symbol)
		require.NoError(t, err)
		assert.Equal(t, symbol, got.Symbol)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestWrap_NamedArgsIgnoreOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var calls atomic.Int32
	search := guard.Wrap(f.guard, "feed-a", "search", counting(&calls, func(_ domain.Named) ([]string, error) {
		return []string{"AAPL"}, nil
	}))

	a := domain.Named{}
	a["symbol"] = "AAPL"
	a["limit"] = 10
	b := domain.Named{}
	b["limit"] = 10
	b["symbol"] = "AAPL"

	_, err := search(context.Background(), a)
	require.NoError(t, err)
	_, err = search(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWrap_EmptyResultsAreNotCached(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		run  func(f *fixture, calls *atomic.Int32) error
	}{
		{
			name: "nil slice",
			run: func(f *fixture, calls *atomic.Int32) error {
				fn := guard.Wrap(f.guard, "feed-a", "list", counting(calls, func(string) ([]string, error) { return nil, nil }))
				_, err := fn(context.Background(), "x")
				return err
			},
		},
		{
			name: "empty slice",
			run: func(f *fixture, calls *atomic.Int32) error {
				fn := guard.Wrap(f.guard, "feed-a", "list", counting(calls, func(string) ([]string, error) { return []string{}, nil }))
				_, err := fn(context.Background(), "x")
				return err
			},
		},
		{
			name: "empty map",
			run: func(f *fixture, calls *atomic.Int32) error {
				fn := guard.Wrap(f.guard, "feed-a", "map", counting(calls, func(string) (map[string]float64, error) {
					return map[string]float64{}, nil
				}))
				_, err := fn(context.Background(), "x")
				return err
			},
		},
		{
			name: "empty string",
			run: func(f *fixture, calls *atomic.Int32) error {
				fn := guard.Wrap(f.guard, "feed-a", "body", counting(calls, func(string) (string, error) { return "", nil }))
				_, err := fn(context.Background(), "x")
				return err
			},
		},
		{
			name: "zero-length array",
			run: func(f *fixture, calls *atomic.Int32) error {
				fn := guard.Wrap(f.guard, "feed-a", "array", counting(calls, func(string) ([0]int, error) { return [0]int{}, nil }))
				_, err := fn(context.Background(), "x")
				return err
			},
		},
		{
			name: "nil pointer",
			run: func(f *fixture, calls *atomic.Int32) error {
				fn := guard.Wrap(f.guard, "feed-a", "ptr", counting(calls, func(string) (*quote, error) { return nil, nil }))
				_, err := fn(context.Background(), "x")
				return err
			},
		},
		{
			name: "rejected by predicate",
			run: func(f *fixture, calls *atomic.Int32) error {
				fn := guard.Wrap(f.guard, "feed-a", "quote", counting(calls, func(string) (quote, error) {
					return quote{Symbol: "AAPL"}, nil
				}), guard.WithCacheable(func(q quote) bool { return q.Price > 0 }))
				_, err := fn(context.Background(), "x")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			var calls atomic.Int32
			require.NoError(t, tt.run(f, &calls))
			require.NoError(t, tt.run(f, &calls))

			assert.Equal(t, int32(2), calls.Load())
			assert.Zero(t, f.cache.Stats().Entries)
		})
	}
}

func TestWrap_FailuresAreRecordedAndReturned(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	upstream := errors.New("HTTP 503")
	var calls atomic.Int32
	get := guard.Wrap(f.guard, "feed-a", "quote", counting(&calls, func(string) (quote, error) {
		return quote{}, upstream
	}))

	_, err := get(context.Background(), "AAPL")
	require.ErrorIs(t, err, upstream)
	assert.Equal(t, upstream, err)

	_, err = get(context.Background(), "AAPL")
	require.ErrorIs(t, err, upstream)
	assert.Equal(t, int32(2), calls.Load())

	h, ok := f.tracker.Status("feed-a")
	require.True(t, ok)
	assert.Equal(t, int64(2), h.FailureCount)
	require.NotNil(t, h.LastError)
	assert.Equal(t, "HTTP 503", *h.LastError)
	assert.Equal(t, domain.StatusUnhealthy, h.Status)
}

func TestWrap_UnconfiguredSourceIsSkipped(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.tracker.Register("youtube", true, false)

	var calls atomic.Int32
	get := guard.Wrap(f.guard, "youtube", "videos", counting(&calls, func(string) ([]string, error) {
		return []string{"v1"}, nil
	}))

	_, err := get(context.Background(), "AAPL")
	require.ErrorIs(t, err, domain.ErrSourceUnconfigured)
	assert.Zero(t, calls.Load())

	h, _ := f.tracker.Status("youtube")
	assert.Zero(t, h.TotalRequests)
}

func TestWrap_WithTTL(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		var calls atomic.Int32
		get := guard.Wrap(f.guard, "feed-a", "quote", counting(&calls, func(symbol string) (quote, error) {
			return quote{Symbol: symbol, Price: 1}, nil
		}), guard.WithTTL(time.Minute))

		_, err := get(context.Background(), "AAPL")
		require.NoError(t, err)
		_, err = get(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())

		time.Sleep(2 * time.Minute)

		_, err = get(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestWrap_UndecodableCacheEntryIsAMiss(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	key, err := fingerprint.NewHasher().Fingerprint("quote", "AAPL")
	require.NoError(t, err)
	f.cache.Set(key, "not a quote", time.Hour)

	var calls atomic.Int32
	get := guard.Wrap(f.guard, "feed-a", "quote", counting(&calls, func(symbol string) (quote, error) {
		return quote{Symbol: symbol, Price: 2}, nil
	}))

	got, err := get(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, quote{Symbol: "AAPL", Price: 2}, got)
	assert.Equal(t, int32(1), calls.Load())

	_, err = get(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWrap_UnfingerprintableArgRunsUncached(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var calls atomic.Int32
	run := guard.Wrap(f.guard, "feed-a", "callback", counting(&calls, func(func()) (string, error) {
		return "ok", nil
	}))

	for range 2 {
		got, err := run(context.Background(), func() {})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
	}
	assert.Equal(t, int32(2), calls.Load())

	h, _ := f.tracker.Status("feed-a")
	assert.Equal(t, int64(2), h.TotalRequests)
}

func TestWrap_ConcurrentIdenticalCallsShareOneExecution(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		release := make(chan struct{})
		var calls atomic.Int32
		get := guard.Wrap(f.guard, "feed-a", "quote", func(_ context.Context, symbol string) (quote, error) {
			calls.Add(1)
			<-release
			return quote{Symbol: symbol, Price: 3}, nil
		})

		const callers = 8
		results := make([]quote, callers)
		var wg sync.WaitGroup
		for i := range callers {
			wg.Go(func() {
				got, err := get(context.Background(), "AAPL")
				assert.NoError(t, err)
				results[i] = got
			})
		}

		synctest.Wait()
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, got := range results {
			assert.Equal(t, quote{Symbol: "AAPL", Price: 3}, got)
		}

		h, _ := f.tracker.Status("feed-a")
		assert.Equal(t, int64(1), h.TotalRequests)
	})
}

func TestWrap_Spans(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	get := guard.Wrap(f.guard, "feed-a", "quote", func(_ context.Context, symbol string) (quote, error) {
		if symbol == "FAIL" {
			return quote{}, errors.New("boom")
		}
		return quote{Symbol: symbol, Price: 1}, nil
	})

	_, _ = get(context.Background(), "AAPL")
	_, _ = get(context.Background(), "AAPL")
	_, _ = get(context.Background(), "FAIL")

	spans := f.spans.Ended()
	require.Len(t, spans, 3)

	hits := make([]bool, 0, len(spans))
	for _, s := range spans {
		assert.Equal(t, "guard.quote", s.Name())
		for _, kv := range s.Attributes() {
			switch kv.Key {
			case attribute.Key("source"):
				assert.Equal(t, "feed-a", kv.Value.AsString())
			case attribute.Key("cache.hit"):
				hits = append(hits, kv.Value.AsBool())
			}
		}
	}
	assert.Equal(t, []bool{false, true, false}, hits)
	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestWrap_NoOpTracer(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tracker := mocks.NewMockHealthTracker(ctrl)
	cacheMock := mocks.NewMockResponseCache(ctrl)
	fp := mocks.NewMockFingerprinter(ctrl)
	log := mocks.NewMockLogger(ctrl)
	m := mocks.NewMockMetrics(ctrl)

	cacheMock.EXPECT().DefaultTTL().Return(time.Hour)
	tracker.EXPECT().Status("feed-a").Return(domain.SourceHealth{}, false)
	fp.EXPECT().Fingerprint("quote", "AAPL").Return("k", nil)
	cacheMock.EXPECT().Get("k").Return(nil, false)
	tracker.EXPECT().RecordRequest("feed-a", true, gomock.Any(), "")
	cacheMock.EXPECT().Set("k", "42", time.Hour)
	m.EXPECT().GuardCall("feed-a", ports.GuardFetched)

	g := guard.New(cacheMock, tracker, fp, log, telemetry.NewNoOpTracer(), m)
	get := guard.Wrap(g, "feed-a", "quote", func(_ context.Context, _ string) (string, error) {
		return "42", nil
	})

	got, err := get(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}
