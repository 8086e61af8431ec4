package otel

import (
	"context"
	"crypto/rand"

	"go.opentelemetry.io/otel/trace"
)

type traceIDKey struct{}

// ContextWithTraceID asks the IDGenerator to use id for root spans started
// from ctx.
func ContextWithTraceID(ctx context.Context, id trace.TraceID) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// IDGenerator generates random IDs, except for root spans whose context
// carries a trace ID from ContextWithTraceID.
type IDGenerator struct{}

// NewIDGenerator creates a new IDGenerator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NewIDs implements sdktrace.IDGenerator.
func (g *IDGenerator) NewIDs(ctx context.Context) (trace.TraceID, trace.SpanID) {
	traceID, ok := ctx.Value(traceIDKey{}).(trace.TraceID)
	for !ok || !traceID.IsValid() {
		_, _ = rand.Read(traceID[:])
		ok = true
	}
	return traceID, g.NewSpanID(ctx, traceID)
}

// NewSpanID implements sdktrace.IDGenerator.
func (g *IDGenerator) NewSpanID(_ context.Context, _ trace.TraceID) trace.SpanID {
	var spanID trace.SpanID
	for !spanID.IsValid() {
		_, _ = rand.Read(spanID[:])
	}
	return spanID
}
