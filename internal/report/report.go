package report

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/mrzor/process-details/internal/attributes"
	"github.com/mrzor/process-details/internal/config"
	"github.com/mrzor/process-details/internal/procdetails"
)

// Application is the process section of a crash report.
type Application struct {
	Processes      []procdetails.Process `json:"processes"`
	CurrentProcess procdetails.Process   `json:"current_process"`
	Attributes     map[string]string     `json:"attributes,omitempty"`
	CollectedAt    time.Time             `json:"collected_at"`
}

// Subject returns the expression subject for this report.
func (a *Application) Subject() *attributes.Subject {
	return attributes.NewSubject(a.CurrentProcess, a.Processes)
}

// Builder collects process details into Applications.
type Builder struct {
	collector *procdetails.Collector
	evaluator *attributes.Evaluator
	now       func() time.Time
}

// NewBuilder creates a Builder. It fails only if a custom attribute
// expression does not compile.
func NewBuilder(env procdetails.Environment, id procdetails.Identity, customAttrs []config.CustomAttribute) (*Builder, error) {
	evaluator, err := attributes.NewEvaluator(customAttrs)
	if err != nil {
		return nil, fmt.Errorf("failed to create attribute evaluator: %w", err)
	}

	return &Builder{
		collector: procdetails.NewCollector(env, id),
		evaluator: evaluator,
		now:       time.Now,
	}, nil
}

// Build takes a fresh snapshot of the application's processes.
func (b *Builder) Build() *Application {
	app := &Application{
		Processes:      b.collector.AppProcesses(),
		CurrentProcess: b.collector.CurrentProcess(),
		CollectedAt:    b.now().UTC(),
	}

	attrs, err := b.evaluator.EvaluateCustomAttributes(app.Subject())
	if err != nil {
		slog.Warn("failed to evaluate custom attributes", "component", "report", "error", err)
	}
	if len(attrs) > 0 {
		app.Attributes = make(map[string]string, len(attrs))
		for _, attr := range attrs {
			app.Attributes[string(attr.Key)] = attr.Value.Emit()
		}
	}

	slog.Debug("collected process details",
		"component", "report",
		"processes", len(app.Processes),
		"pid", app.CurrentProcess.Pid,
		"name", app.CurrentProcess.Name)

	return app
}

// Encode writes the application as indented JSON.
func Encode(w io.Writer, app *Application) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(app); err != nil {
		return fmt.Errorf("failed to encode process details: %w", err)
	}
	return nil
}
