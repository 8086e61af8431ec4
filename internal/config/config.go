package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Export modes.
const (
	ExportJSON = "json"
	ExportOTEL = "otel"
	ExportBoth = "both"
)

var (
	validDirectories = []string{"gopsutil", "procfs", "ps", "none"}
	validScopes      = []string{"app", "user", "all"}
	validExports     = []string{ExportJSON, ExportOTEL, ExportBoth}
)

// CustomAttribute is a named expression evaluated against the collected
// process details.
type CustomAttribute struct {
	Name       string
	Expression string
}

// EnvConfig holds settings read from PROCESS_DETAILS_* environment variables.
type EnvConfig struct {
	DefaultName string `env:"PROCESS_DETAILS_DEFAULT_NAME"`
	Directory   string `env:"PROCESS_DETAILS_DIRECTORY" envDefault:"gopsutil"`
	Scope       string `env:"PROCESS_DETAILS_SCOPE" envDefault:"app"`
	SelfName    bool   `env:"PROCESS_DETAILS_SELF_NAME" envDefault:"true"`
	Attributes  string `env:"PROCESS_DETAILS_ATTRIBUTES"`
	Export      string `env:"PROCESS_DETAILS_EXPORT" envDefault:"json"`
	TraceID     string `env:"PROCESS_DETAILS_TRACE_ID"`
	ParentID    string `env:"PROCESS_DETAILS_PARENT_ID"`
}

// ParseEnvConfig parses PROCESS_DETAILS_* environment variables.
func ParseEnvConfig() (*EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}
	return &cfg, nil
}

// Config holds the resolved configuration.
type Config struct {
	// DefaultName is the application's main process name; empty means
	// derive it from the running executable.
	DefaultName string
	// Directory selects the process directory backend.
	Directory string
	// Scope selects which processes belong to the application.
	Scope string
	// SelfName enables reporting the caller's own name on the fallback path.
	SelfName bool
	// CustomAttributes are evaluated and attached to the report.
	CustomAttributes []CustomAttribute
	// Export is one of ExportJSON, ExportOTEL or ExportBoth.
	Export string
	// TraceID is an expression for the crash trace the span joins.
	TraceID string
	// ParentID is an expression for the parent span ID.
	ParentID string
	// Message is set when the caller asked for help or version output
	// instead of a collection run.
	Message string
}

// ExportsJSON reports whether the JSON payload should be written.
func (c *Config) ExportsJSON() bool {
	return c.Export == ExportJSON || c.Export == ExportBoth
}

// ExportsOTEL reports whether the OpenTelemetry span should be emitted.
func (c *Config) ExportsOTEL() bool {
	return c.Export == ExportOTEL || c.Export == ExportBoth
}

// ParseArgs parses command-line arguments on top of environment settings.
// CLI flags override environment variables; attributes from the environment
// come first, CLI attributes are appended.
//
// Format: program_name [-n name] [-d directory] [-s scope] [-a NAME=EXPR]...
// [-t trace-id] [-p parent-id] [-e export] [--no-self-name]
func ParseArgs(args []string, version, commit, date string) (*Config, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no arguments provided")
	}
	programName := args[0]

	envCfg, err := ParseEnvConfig()
	if err != nil {
		return nil, err
	}

	envAttrs, err := ParseAttributeString(envCfg.Attributes)
	if err != nil {
		return nil, fmt.Errorf("PROCESS_DETAILS_ATTRIBUTES: %w", err)
	}

	cfg := &Config{
		DefaultName:      envCfg.DefaultName,
		Directory:        envCfg.Directory,
		Scope:            envCfg.Scope,
		SelfName:         envCfg.SelfName,
		CustomAttributes: envAttrs,
		Export:           envCfg.Export,
		TraceID:          envCfg.TraceID,
		ParentID:         envCfg.ParentID,
	}

	for i := 1; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			cfg.Message = usage(programName)
			return cfg, nil
		case "-v", "--version":
			cfg.Message = fmt.Sprintf("%s %s (commit: %s, built: %s)\n", programName, version, commit, date)
			return cfg, nil
		case "--no-self-name":
			cfg.SelfName = false
			continue
		}

		value, ok, err := flagValue(args, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unknown argument %q\n%s", arg, usage(programName))
		}
		i++

		switch arg {
		case "-n", "--default-name":
			cfg.DefaultName = value
		case "-d", "--directory":
			cfg.Directory = value
		case "-s", "--scope":
			cfg.Scope = value
		case "-e", "--export":
			cfg.Export = value
		case "-t", "--trace-id":
			cfg.TraceID = value
		case "-p", "--parent-id":
			cfg.ParentID = value
		case "-a", "--attribute":
			attr, err := parseAttribute(value)
			if err != nil {
				return nil, err
			}
			cfg.CustomAttributes = append(cfg.CustomAttributes, attr)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var valueFlags = map[string]bool{
	"-n": true, "--default-name": true,
	"-d": true, "--directory": true,
	"-s": true, "--scope": true,
	"-e": true, "--export": true,
	"-t": true, "--trace-id": true,
	"-p": true, "--parent-id": true,
	"-a": true, "--attribute": true,
}

// flagValue returns the value following a flag that takes one.
func flagValue(args []string, i int) (string, bool, error) {
	if !valueFlags[args[i]] {
		return "", false, nil
	}
	if i+1 >= len(args) {
		return "", false, fmt.Errorf("%s requires a value", args[i])
	}
	return args[i+1], true, nil
}

func (c *Config) validate() error {
	c.Directory = strings.ToLower(strings.TrimSpace(c.Directory))
	c.Scope = strings.ToLower(strings.TrimSpace(c.Scope))
	c.Export = strings.ToLower(strings.TrimSpace(c.Export))

	if !contains(validDirectories, c.Directory) {
		return fmt.Errorf("invalid directory %q (want one of %s)", c.Directory, strings.Join(validDirectories, ", "))
	}
	if !contains(validScopes, c.Scope) {
		return fmt.Errorf("invalid scope %q (want one of %s)", c.Scope, strings.Join(validScopes, ", "))
	}
	if !contains(validExports, c.Export) {
		return fmt.Errorf("invalid export %q (want one of %s)", c.Export, strings.Join(validExports, ", "))
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// ParseAttributeString parses "name=expr;name=expr" as used by
// PROCESS_DETAILS_ATTRIBUTES. Empty sections are ignored.
func ParseAttributeString(s string) ([]CustomAttribute, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var attrs []CustomAttribute
	for _, section := range strings.Split(s, ";") {
		if strings.TrimSpace(section) == "" {
			continue
		}
		attr, err := parseAttribute(section)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// parseAttribute parses a single NAME=EXPR pair. Only the first '=' splits.
func parseAttribute(s string) (CustomAttribute, error) {
	name, expression, ok := strings.Cut(s, "=")
	if !ok {
		return CustomAttribute{}, fmt.Errorf("invalid attribute format %q: expected NAME=EXPR", s)
	}

	name = strings.TrimSpace(name)
	expression = strings.TrimSpace(expression)
	if name == "" {
		return CustomAttribute{}, fmt.Errorf("invalid attribute %q: name cannot be empty", s)
	}
	if expression == "" {
		return CustomAttribute{}, fmt.Errorf("invalid attribute %q: expression cannot be empty", s)
	}

	return CustomAttribute{Name: name, Expression: expression}, nil
}

func usage(programName string) string {
	return fmt.Sprintf(`Usage: %s [flags]

Collects the running application processes and the current process for a
crash report.

Flags:
  -n, --default-name NAME   main process name (default: executable name)
  -d, --directory BACKEND   gopsutil, procfs, ps or none (default: gopsutil)
  -s, --scope SCOPE         app, user or all (default: app)
  -a, --attribute NAME=EXPR custom attribute, repeatable
  -t, --trace-id EXPR       trace ID expression for the exported span
  -p, --parent-id EXPR      parent span ID expression
  -e, --export MODE         json, otel or both (default: json)
      --no-self-name        do not report the caller's own name
  -h, --help                show this help
  -v, --version             show version
`, programName)
}
