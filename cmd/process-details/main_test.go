package main

import (
	"bytes"
	"os"
	"runtime"
	"strconv"
	"testing"

	"github.com/goccy/go-json"
	"github.com/mrzor/process-details/internal/config"
	"github.com/mrzor/process-details/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestSetupBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{"unknown backend", config.Config{Directory: "tasklist", Scope: "app"}, "unknown process directory"},
		{"invalid scope", config.Config{Directory: "none", Scope: "everyone"}, "invalid scope"},
		{"bad attribute", config.Config{
			Directory:        "none",
			Scope:            "app",
			CustomAttributes: []config.CustomAttribute{{Name: "x", Expression: "pid +"}},
		}, "failed to create attribute evaluator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := setupBuilder(&tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetupBuilder_Procfs(t *testing.T) {
	cfg := &config.Config{Directory: "procfs", Scope: "app", DefaultName: "com.app"}

	builder, err := setupBuilder(cfg)
	if runtime.GOOS != "linux" {
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not supported on this platform")
		return
	}
	require.NoError(t, err)
	require.NotNil(t, builder)
}

func TestRunArgs_WritesJSON(t *testing.T) {
	clearEnv(t)

	var buf bytes.Buffer
	err := runArgs([]string{"process-details", "-d", "none", "-n", "com.app", "--no-self-name", "-a", "who=pid"}, &buf)
	require.NoError(t, err)

	var app report.Application
	require.NoError(t, json.Unmarshal(buf.Bytes(), &app))

	assert.Empty(t, app.Processes)
	assert.Equal(t, int32(os.Getpid()), app.CurrentProcess.Pid)
	assert.Empty(t, app.CurrentProcess.Name)
	assert.False(t, app.CurrentProcess.IsDefaultProcess)
	assert.Equal(t, map[string]string{"who": strconv.Itoa(os.Getpid())}, app.Attributes)
	assert.False(t, app.CollectedAt.IsZero())
}

func TestRunArgs_Help(t *testing.T) {
	clearEnv(t)

	var buf bytes.Buffer
	require.NoError(t, runArgs([]string{"process-details", "-h"}, &buf))
	assert.Contains(t, buf.String(), "Usage:")
}

func TestRunArgs_InvalidDirectory(t *testing.T) {
	clearEnv(t)

	var buf bytes.Buffer
	err := runArgs([]string{"process-details", "-d", "tasklist"}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid directory")
	assert.Empty(t, buf.String())
}
