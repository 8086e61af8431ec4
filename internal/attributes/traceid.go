package attributes

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDEvaluator handles evaluation and validation of trace ID expressions.
type TraceIDEvaluator struct {
	program *vm.Program
}

// NewTraceIDEvaluator creates a new trace ID evaluator.
// If exprStr is empty, the evaluator yields a zero trace ID.
func NewTraceIDEvaluator(exprStr string) (*TraceIDEvaluator, error) {
	if exprStr == "" {
		return &TraceIDEvaluator{}, nil
	}

	// Compile the expression against the process variables
	program, err := expr.Compile(exprStr, expr.Env(typeEnv()))
	if err != nil {
		return nil, fmt.Errorf("failed to compile trace-id expression: %w", err)
	}

	return &TraceIDEvaluator{program: program}, nil
}

// EvaluateAndValidate evaluates the trace-id expression and validates the result.
// Returns the trace ID, any warnings to attach to the span, and an error.
// If no expression is configured, returns a zero trace ID (caller should generate random).
func (e *TraceIDEvaluator) EvaluateAndValidate(subject *Subject) (trace.TraceID, []attribute.KeyValue, error) {
	if e.program == nil {
		// No expression - return zero trace ID (caller should generate random)
		return trace.TraceID{}, nil, nil
	}

	if subject == nil {
		return trace.TraceID{}, nil, fmt.Errorf("no process details available")
	}

	// Evaluate the expression
	output, err := expr.Run(e.program, subject.exprEnv())
	if err != nil {
		return trace.TraceID{}, nil, fmt.Errorf("failed to evaluate trace-id expression: %w", err)
	}

	resultStr := fmt.Sprint(output)

	// Try to parse as valid trace ID (32 hex chars)
	if len(resultStr) == 32 {
		if traceID, err := trace.TraceIDFromHex(resultStr); err == nil {
			return traceID, nil, nil
		}
	}

	// Not a trace ID: hash it and keep the first 16 bytes.
	hash := sha256.Sum256([]byte(resultStr))
	traceID, err := trace.TraceIDFromHex(hex.EncodeToString(hash[:16]))
	if err != nil {
		// Unreachable, the hash is always valid hex
		return trace.TraceID{}, nil, fmt.Errorf("failed to create trace ID from hash: %w", err)
	}

	// Record what the expression produced so the conversion is visible on the span
	warnings := []attribute.KeyValue{
		attribute.String("_trace_id_expr_result", resultStr),
		attribute.String("_trace_id_invalid_warning", fmt.Sprintf("Expression result %q is not a valid 32-char hex trace ID, used SHA-256 hash instead", resultStr)),
	}

	return traceID, warnings, nil
}

// ParentIDEvaluator handles evaluation and validation of parent span ID expressions.
type ParentIDEvaluator struct {
	program *vm.Program
}

// NewParentIDEvaluator creates a new parent ID evaluator.
// If exprStr is empty, the evaluator will return no parent ID (zero span ID).
func NewParentIDEvaluator(exprStr string) (*ParentIDEvaluator, error) {
	if exprStr == "" {
		return &ParentIDEvaluator{}, nil
	}

	// Compile the expression against the process variables
	program, err := expr.Compile(exprStr, expr.Env(typeEnv()))
	if err != nil {
		return nil, fmt.Errorf("failed to compile parent-id expression: %w", err)
	}

	return &ParentIDEvaluator{program: program}, nil
}

// EvaluateAndValidate evaluates the parent-id expression and validates the result.
// If no expression is configured or the result is invalid, returns zero span ID (no parent).
func (e *ParentIDEvaluator) EvaluateAndValidate(subject *Subject) (trace.SpanID, []attribute.KeyValue, error) {
	if e.program == nil {
		// No parent-id expression - return zero span ID (no parent)
		return trace.SpanID{}, nil, nil
	}

	if subject == nil {
		return trace.SpanID{}, nil, fmt.Errorf("no process details available")
	}

	// Evaluate the expression
	output, err := expr.Run(e.program, subject.exprEnv())
	if err != nil {
		return trace.SpanID{}, nil, fmt.Errorf("failed to evaluate parent-id expression: %w", err)
	}

	resultStr := fmt.Sprint(output)

	// Try to parse as valid span ID (16 hex chars)
	if len(resultStr) == 16 {
		if spanID, err := trace.SpanIDFromHex(resultStr); err == nil {
			return spanID, nil, nil
		}
	}

	// Invalid span ID - the span starts without a parent

	warnings := []attribute.KeyValue{
		attribute.String("_parent_id_expr_result", resultStr),
		attribute.String("_parent_id_invalid_warning", fmt.Sprintf("Expression result %q is not a valid 16-char hex span ID, using null parent ID instead", resultStr)),
	}

	return trace.SpanID{}, warnings, nil
}
