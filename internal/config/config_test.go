package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTraceID = "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"
const testParentID = "0123456789abcdef"

// clearEnv resets every PROCESS_DETAILS_* variable so host settings do not
// leak into the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PROCESS_DETAILS_DEFAULT_NAME",
		"PROCESS_DETAILS_DIRECTORY",
		"PROCESS_DETAILS_SCOPE",
		"PROCESS_DETAILS_SELF_NAME",
		"PROCESS_DETAILS_ATTRIBUTES",
		"PROCESS_DETAILS_EXPORT",
		"PROCESS_DETAILS_TRACE_ID",
		"PROCESS_DETAILS_PARENT_ID",
	} {
		t.Setenv(name, "")
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseArgs([]string{"process-details"}, "dev", "", "")
	require.NoError(t, err)

	assert.Empty(t, cfg.DefaultName)
	assert.Equal(t, "gopsutil", cfg.Directory)
	assert.Equal(t, "app", cfg.Scope)
	assert.True(t, cfg.SelfName)
	assert.Equal(t, ExportJSON, cfg.Export)
	assert.Empty(t, cfg.CustomAttributes)
	assert.Empty(t, cfg.Message)
	assert.True(t, cfg.ExportsJSON())
	assert.False(t, cfg.ExportsOTEL())
}

func TestParseArgs_NoArguments(t *testing.T) {
	_, err := ParseArgs(nil, "dev", "", "")
	require.Error(t, err)
}

func TestParseArgs_AllFlags(t *testing.T) {
	clearEnv(t)

	args := []string{
		"process-details",
		"-n", "com.app",
		"-d", "procfs",
		"-s", "user",
		"-e", "both",
		"-t", testTraceID,
		"-p", testParentID,
		"--no-self-name",
	}

	cfg, err := ParseArgs(args, "dev", "", "")
	require.NoError(t, err)
	assert.Equal(t, "com.app", cfg.DefaultName)
	assert.Equal(t, "procfs", cfg.Directory)
	assert.Equal(t, "user", cfg.Scope)
	assert.Equal(t, ExportBoth, cfg.Export)
	assert.Equal(t, testTraceID, cfg.TraceID)
	assert.Equal(t, testParentID, cfg.ParentID)
	assert.False(t, cfg.SelfName)
	assert.True(t, cfg.ExportsJSON())
	assert.True(t, cfg.ExportsOTEL())
}

func TestParseArgs_LongForms(t *testing.T) {
	clearEnv(t)

	args := []string{
		"process-details",
		"--default-name", "com.app",
		"--directory", "ps",
		"--scope", "all",
		"--export", "otel",
		"--trace-id", testTraceID,
		"--parent-id", testParentID,
		"--attribute", "main=is_default",
	}

	cfg, err := ParseArgs(args, "dev", "", "")
	require.NoError(t, err)
	assert.Equal(t, "com.app", cfg.DefaultName)
	assert.Equal(t, "ps", cfg.Directory)
	assert.Equal(t, "all", cfg.Scope)
	assert.Equal(t, ExportOTEL, cfg.Export)
	require.Len(t, cfg.CustomAttributes, 1)
	assert.Equal(t, "main", cfg.CustomAttributes[0].Name)
}

func TestParseArgs_CaseInsensitiveValues(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseArgs([]string{"process-details", "-d", " GOPSUTIL ", "-e", "JSON"}, "dev", "", "")
	require.NoError(t, err)
	assert.Equal(t, "gopsutil", cfg.Directory)
	assert.Equal(t, ExportJSON, cfg.Export)
}

func TestParseArgs_MissingValue(t *testing.T) {
	clearEnv(t)

	_, err := ParseArgs([]string{"process-details", "-n"}, "dev", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-n requires a value")
}

func TestParseArgs_UnknownArgument(t *testing.T) {
	clearEnv(t)

	_, err := ParseArgs([]string{"process-details", "--bogus"}, "dev", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown argument")
}

func TestParseArgs_InvalidValues(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"directory", []string{"process-details", "-d", "tasklist"}, "invalid directory"},
		{"scope", []string{"process-details", "-s", "world"}, "invalid scope"},
		{"export", []string{"process-details", "-e", "xml"}, "invalid export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args, "dev", "", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseArgs_Help(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseArgs([]string{"process-details", "-h"}, "dev", "", "")
	require.NoError(t, err)
	assert.Contains(t, cfg.Message, "Usage: process-details")
	assert.Contains(t, cfg.Message, "--directory")
}

func TestParseArgs_Version(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseArgs([]string{"process-details", "--version"}, "1.2.3", "abc123", "2024-01-01")
	require.NoError(t, err)
	assert.Contains(t, cfg.Message, "1.2.3")
	assert.Contains(t, cfg.Message, "abc123")
}

func TestParseArgs_MultipleCustomAttributes(t *testing.T) {
	clearEnv(t)

	args := []string{
		"process-details",
		"-a", "main=is_default",
		"-a", `label=name + ":" + string(pid)`,
	}

	cfg, err := ParseArgs(args, "dev", "", "")
	require.NoError(t, err)
	require.Len(t, cfg.CustomAttributes, 2)
	assert.Equal(t, "main", cfg.CustomAttributes[0].Name)
	assert.Equal(t, "is_default", cfg.CustomAttributes[0].Expression)
	assert.Equal(t, "label", cfg.CustomAttributes[1].Name)
	assert.Equal(t, `name + ":" + string(pid)`, cfg.CustomAttributes[1].Expression)
}

func TestParseArgs_CustomAttributeWithEquals(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseArgs([]string{"process-details", "-a", `check=name=="com.app"`}, "dev", "", "")
	require.NoError(t, err)
	require.Len(t, cfg.CustomAttributes, 1)
	assert.Equal(t, "check", cfg.CustomAttributes[0].Name)
	assert.Equal(t, `name=="com.app"`, cfg.CustomAttributes[0].Expression)
}

func TestParseArgs_CustomAttributeErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		attr string
		want string
	}{
		{"invalid_no_equals", "NAME=EXPR"},
		{"=value", "name cannot be empty"},
		{"name=", "expression cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			_, err := ParseArgs([]string{"process-details", "-a", tt.attr}, "dev", "", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseArgs_EnvVarFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROCESS_DETAILS_DEFAULT_NAME", "com.env")
	t.Setenv("PROCESS_DETAILS_DIRECTORY", "none")
	t.Setenv("PROCESS_DETAILS_SELF_NAME", "false")
	t.Setenv("PROCESS_DETAILS_TRACE_ID", "env_trace")

	cfg, err := ParseArgs([]string{"process-details"}, "dev", "", "")
	require.NoError(t, err)
	assert.Equal(t, "com.env", cfg.DefaultName)
	assert.Equal(t, "none", cfg.Directory)
	assert.False(t, cfg.SelfName)
	assert.Equal(t, "env_trace", cfg.TraceID)
}

func TestParseArgs_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROCESS_DETAILS_DEFAULT_NAME", "com.env")
	t.Setenv("PROCESS_DETAILS_TRACE_ID", "env_trace")

	args := []string{"process-details", "-n", "com.cli", "-t", "cli_trace"}
	cfg, err := ParseArgs(args, "dev", "", "")
	require.NoError(t, err)
	assert.Equal(t, "com.cli", cfg.DefaultName) // CLI wins
	assert.Equal(t, "cli_trace", cfg.TraceID)   // CLI wins
}

func TestParseArgs_AttributesMerge(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROCESS_DETAILS_ATTRIBUTES", "env_attr=name")

	cfg, err := ParseArgs([]string{"process-details", "-a", "cli_attr=pid"}, "dev", "", "")
	require.NoError(t, err)
	require.Len(t, cfg.CustomAttributes, 2)
	assert.Equal(t, "env_attr", cfg.CustomAttributes[0].Name) // Env comes first
	assert.Equal(t, "cli_attr", cfg.CustomAttributes[1].Name) // CLI comes second
}

func TestParseArgs_InvalidEnvAttributes(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROCESS_DETAILS_ATTRIBUTES", "broken")

	_, err := ParseArgs([]string{"process-details"}, "dev", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROCESS_DETAILS_ATTRIBUTES")
}

func TestParseEnvConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseEnvConfig()
	require.NoError(t, err)
	assert.Equal(t, "gopsutil", cfg.Directory)
	assert.Equal(t, "app", cfg.Scope)
	assert.Equal(t, "json", cfg.Export)
}

func TestParseEnvConfig_InvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROCESS_DETAILS_SELF_NAME", "maybe")

	_, err := ParseEnvConfig()
	require.Error(t, err)
}

func TestParseAttributeString_Valid(t *testing.T) {
	attrs, err := ParseAttributeString(`main=is_default;label=name;count=processes`)

	require.NoError(t, err)
	require.Len(t, attrs, 3)
	assert.Equal(t, "main", attrs[0].Name)
	assert.Equal(t, "is_default", attrs[0].Expression)
	assert.Equal(t, "count", attrs[2].Name)
	assert.Equal(t, "processes", attrs[2].Expression)
}

func TestParseAttributeString_Empty(t *testing.T) {
	attrs, err := ParseAttributeString("")
	require.NoError(t, err)
	assert.Nil(t, attrs)
}

func TestParseAttributeString_WhitespaceAndEmptySections(t *testing.T) {
	attrs, err := ParseAttributeString("  foo  =  bar  ;;  baz  =  qux  ;")

	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "foo", attrs[0].Name)
	assert.Equal(t, "bar", attrs[0].Expression)
	assert.Equal(t, "baz", attrs[1].Name)
	assert.Equal(t, "qux", attrs[1].Expression)
}

func TestOTELConfig_GetEndpoint(t *testing.T) {
	cfg := &OTELConfig{}
	assert.Equal(t, "localhost:4318", cfg.GetEndpoint())

	cfg.ExporterEndpoint = "collector:4318"
	assert.Equal(t, "collector:4318", cfg.GetEndpoint())

	cfg.TracesEndpoint = "traces:4318"
	assert.Equal(t, "traces:4318", cfg.GetEndpoint())
}

func TestOTELConfig_ParseResourceAttributes(t *testing.T) {
	cfg := &OTELConfig{ResourceAttributes: "deployment.environment=prod, team = mobile ,broken,=nokey"}

	attrs := cfg.ParseResourceAttributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, "deployment.environment", string(attrs[0].Key))
	assert.Equal(t, "prod", attrs[0].Value.AsString())
	assert.Equal(t, "team", string(attrs[1].Key))
	assert.Equal(t, "mobile", attrs[1].Value.AsString())
}

func TestParseOTELConfig_Defaults(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "")

	cfg, err := ParseOTELConfig()
	require.NoError(t, err)
	assert.Equal(t, "process-details", cfg.ServiceName)
	assert.True(t, cfg.Insecure)
}
