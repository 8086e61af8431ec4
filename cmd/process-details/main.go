// process-details collects the running application processes and the current
// process for a crash report, and writes them as JSON or an OpenTelemetry span.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mrzor/process-details/internal/config"
	"github.com/mrzor/process-details/internal/hostenv"
	"github.com/mrzor/process-details/internal/otel"
	"github.com/mrzor/process-details/internal/output"
	"github.com/mrzor/process-details/internal/report"
	"go.opentelemetry.io/otel/trace"
)

// Version information injected by GoReleaser at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// setupOTEL initializes the OTEL provider and returns a tracer and cleanup function.
func setupOTEL(versionInfo string) (trace.Tracer, func(), error) {
	otelCfg, err := config.ParseOTELConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse OTEL config: %w", err)
	}

	tp, err := otel.InitProvider(otelCfg, versionInfo)
	if err != nil {
		return nil, nil, fmt.Errorf("ABORT: failed to initialize OTEL provider: %w", err)
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otel.ShutdownProvider(tp, shutdownCtx); err != nil {
			log.Printf("Error shutting down OTEL provider: %v", err)
		}
	}

	return tp.Tracer("process-details"), cleanup, nil
}

// setupBuilder wires the host environment into a report builder.
func setupBuilder(cfg *config.Config) (*report.Builder, error) {
	scope, err := hostenv.ParseScope(cfg.Scope)
	if err != nil {
		return nil, err
	}

	env, err := hostenv.NewEnvironment(hostenv.Options{
		DefaultProcessName: cfg.DefaultName,
		Backend:            hostenv.Backend(cfg.Directory),
		Scope:              scope,
	})
	if err != nil {
		return nil, err
	}

	return report.NewBuilder(env, hostenv.NewIdentity(cfg.SelfName), cfg.CustomAttributes)
}

// exportOTEL emits the report as a span and flushes it before returning.
func exportOTEL(cfg *config.Config, app *report.Application) error {
	tracer, cleanup, err := setupOTEL(fmt.Sprintf("%s (%s)", version, commit))
	if err != nil {
		return err
	}
	defer cleanup()

	formatter, err := output.NewOTELFormatter(tracer, cfg.TraceID, cfg.ParentID)
	if err != nil {
		return fmt.Errorf("failed to create OTEL formatter: %w", err)
	}

	sc, err := formatter.Emit(context.Background(), app)
	if err != nil {
		return err
	}
	log.Printf("Exported process details in trace %s", sc.TraceID())
	return nil
}

func run() error {
	return runArgs(os.Args, os.Stdout)
}

// runArgs parses args, collects one snapshot and writes the JSON payload to w.
func runArgs(args []string, w io.Writer) error {
	cfg, err := config.ParseArgs(args, version, commit, date)
	if err != nil {
		return err
	}
	if cfg.Message != "" {
		fmt.Fprint(w, cfg.Message)
		return nil
	}

	builder, err := setupBuilder(cfg)
	if err != nil {
		return err
	}

	app := builder.Build()

	if cfg.ExportsJSON() {
		if err := report.Encode(w, app); err != nil {
			return err
		}
	}

	if cfg.ExportsOTEL() {
		if err := exportOTEL(cfg, app); err != nil {
			return err
		}
	}

	return nil
}
