package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/vigil/internal/core/ports"
)

// LogBridge implements sdktrace.SpanProcessor by writing every finished
// span as a debug log line.
type LogBridge struct {
	logger ports.Logger
}

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)

// NewLogBridge returns a LogBridge writing to logger.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// NewProvider builds an SDK provider that reports spans through logger.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewLogBridge(logger)))
}

// OnStart is called when a span starts.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(FormatSpan(s))
}

// Shutdown is a no-op.
func (b *LogBridge) Shutdown(_ context.Context) error { return nil }

// ForceFlush is a no-op.
func (b *LogBridge) ForceFlush(_ context.Context) error { return nil }

// FormatSpan renders a finished span on one line.
func FormatSpan(s sdktrace.ReadOnlySpan) string {
	var sb strings.Builder
	sb.WriteString("span ")
	sb.WriteString(s.Name())
	sb.WriteString(" ")
	sb.WriteString(s.EndTime().Sub(s.StartTime()).String())

	for _, kv := range s.Attributes() {
		sb.WriteString(" ")
		sb.WriteString(string(kv.Key))
		sb.WriteString("=")
		sb.WriteString(kv.Value.Emit())
	}

	if st := s.Status(); st.Code == codes.Error {
		sb.WriteString(" error=")
		sb.WriteString(st.Description)
	}

	return sb.String()
}
