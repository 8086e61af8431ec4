package output

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mrzor/process-details/internal/attributes"
	"github.com/mrzor/process-details/internal/otel"
	"github.com/mrzor/process-details/internal/procdetails"
	"github.com/mrzor/process-details/internal/report"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// SpanName is the name of the span emitted for each report.
const SpanName = "process_details"

// OTELFormatter formats process detail reports as OpenTelemetry spans.
type OTELFormatter struct {
	tracer       trace.Tracer
	traceIDEval  *attributes.TraceIDEvaluator
	parentIDEval *attributes.ParentIDEvaluator
}

// NewOTELFormatter creates a new OTELFormatter. traceIDExpr and parentIDExpr
// may be empty.
func NewOTELFormatter(tracer trace.Tracer, traceIDExpr, parentIDExpr string) (*OTELFormatter, error) {
	traceIDEval, err := attributes.NewTraceIDEvaluator(traceIDExpr)
	if err != nil {
		return nil, err
	}
	parentIDEval, err := attributes.NewParentIDEvaluator(parentIDExpr)
	if err != nil {
		return nil, err
	}

	return &OTELFormatter{
		tracer:       tracer,
		traceIDEval:  traceIDEval,
		parentIDEval: parentIDEval,
	}, nil
}

// Emit records app as a single span and returns its span context.
func (f *OTELFormatter) Emit(ctx context.Context, app *report.Application) (trace.SpanContext, error) {
	if app == nil {
		return trace.SpanContext{}, fmt.Errorf("no process details to emit")
	}

	ctx, warnings := f.parentContext(ctx, app)

	_, span := f.tracer.Start(ctx, SpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(app.CollectedAt),
	)

	span.SetAttributes(processAttributes(app.CurrentProcess)...)
	span.SetAttributes(attribute.Int("app.process_count", len(app.Processes)))
	span.SetAttributes(customAttributes(app.Attributes)...)
	if len(warnings) > 0 {
		span.SetAttributes(warnings...)
	}

	for _, p := range app.Processes {
		span.AddEvent("process",
			trace.WithTimestamp(app.CollectedAt),
			trace.WithAttributes(processAttributes(p)...),
		)
	}

	span.End(trace.WithTimestamp(app.CollectedAt))
	return span.SpanContext(), nil
}

// parentContext resolves the configured trace and parent IDs. Evaluation
// failures are logged and leave the span as a fresh root.
func (f *OTELFormatter) parentContext(ctx context.Context, app *report.Application) (context.Context, []attribute.KeyValue) {
	subject := app.Subject()

	traceID, warnings, err := f.traceIDEval.EvaluateAndValidate(subject)
	if err != nil {
		slog.Warn("can't evaluate trace ID, using a random one", "component", "output", "error", err)
		traceID = trace.TraceID{}
	}

	parentID, parentWarnings, err := f.parentIDEval.EvaluateAndValidate(subject)
	if err != nil {
		slog.Warn("can't evaluate parent ID, emitting a root span", "component", "output", "error", err)
		parentID = trace.SpanID{}
	}
	warnings = append(warnings, parentWarnings...)

	if !traceID.IsValid() {
		return ctx, warnings
	}

	if parentID.IsValid() {
		parent := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     parentID,
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
		})
		return trace.ContextWithRemoteSpanContext(ctx, parent), warnings
	}

	return otel.ContextWithTraceID(ctx, traceID), warnings
}

func processAttributes(p procdetails.Process) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.ProcessPID(int(p.Pid)),
		attribute.Int("process.importance", int(p.Importance)),
		attribute.String("process.importance_name", procdetails.ImportanceName(p.Importance)),
		attribute.Bool("process.is_default", p.IsDefaultProcess),
	}
	if p.Name != "" {
		attrs = append(attrs, semconv.ProcessExecutableName(p.Name))
	}
	return attrs
}

// customAttributes converts report attributes in key order.
func customAttributes(m map[string]string) []attribute.KeyValue {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, attribute.String(k, m[k]))
	}
	return attrs
}
