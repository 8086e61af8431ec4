// Package output provides formatters for exporting collected process details.
//
// OTELFormatter is a pure formatting layer that:
//   - Receives a built report.Application
//   - Creates one OpenTelemetry span per report
//   - Records each listed process as a span event
//
// It does NOT:
//   - Query the host for processes
//   - Evaluate custom attributes (already on the report)
//   - Manage the tracer provider lifecycle
//
// Trace and parent span IDs come from expressions evaluated by the
// attributes package.
package output
