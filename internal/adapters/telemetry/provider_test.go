package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/vigil/internal/adapters/telemetry"
	"go.trai.ch/vigil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func setupRecorder(t *testing.T) (*tracetest.SpanRecorder, *trace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func TestOTelTracer_Attributes(t *testing.T) {
	t.Parallel()

	sr, tp := setupRecorder(t)
	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")

	_, span := tracer.Start(context.Background(), "guard.quote")
	span.SetAttribute("source", "feed-a")
	span.SetAttribute("cache.hit", true)
	span.SetAttribute("count", 3)
	span.SetAttribute("bytes", int64(42))
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("timeout", 2*time.Second)
	span.SetAttribute("tags", []string{"a", "b"})
	span.SetAttribute("other", struct{ N int }{7})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "guard.quote", spans[0].Name())

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "feed-a", attrs["source"].AsString())
	assert.True(t, attrs["cache.hit"].AsBool())
	assert.Equal(t, int64(3), attrs["count"].AsInt64())
	assert.Equal(t, int64(42), attrs["bytes"].AsInt64())
	assert.InDelta(t, 0.5, attrs["ratio"].AsFloat64(), 1e-9)
	assert.Equal(t, "2s", attrs["timeout"].AsString())
	assert.Equal(t, []string{"a", "b"}, attrs["tags"].AsStringSlice())
	assert.Equal(t, "{7}", attrs["other"].AsString())
}

func TestOTelTracer_RecordError(t *testing.T) {
	t.Parallel()

	sr, tp := setupRecorder(t)
	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")

	_, span := tracer.Start(context.Background(), "guard.quote")
	span.RecordError(nil)
	span.RecordError(errors.New("upstream down"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "upstream down", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestOTelTracer_ChildSpans(t *testing.T) {
	t.Parallel()

	sr, tp := setupRecorder(t)
	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")

	ctx, parent := tracer.Start(context.Background(), "fetch")
	_, child := tracer.Start(ctx, "guard.quote")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestLogBridge_WritesDebugLine(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var lines []string
	log.EXPECT().Debug(gomock.Any()).Do(func(msg string) { lines = append(lines, msg) }).Times(1)

	tp := telemetry.NewProvider(log)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")
	_, span := tracer.Start(context.Background(), "guard.quote")
	span.SetAttribute("source", "feed-a")
	span.RecordError(errors.New("boom"))
	span.End()

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "span guard.quote ")
	assert.Contains(t, lines[0], "source=feed-a")
	assert.Contains(t, lines[0], "error=boom")
}

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "anything")
	assert.Equal(t, ctx, got)

	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}
