package hostenv

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mrzor/process-details/internal/procdetails"
)

func hlog() *slog.Logger {
	return slog.With("component", "hostenv")
}

// Backend names a process directory implementation.
type Backend string

const (
	BackendGopsutil Backend = "gopsutil"
	BackendProcfs   Backend = "procfs"
	BackendPS       Backend = "ps"
	BackendNone     Backend = "none"
)

// Options configures the host environment.
type Options struct {
	DefaultProcessName string
	Backend            Backend
	Scope              Scope
}

// Environment implements procdetails.Environment for the local host.
type Environment struct {
	defaultName string
	directory   procdetails.Directory
}

// NewEnvironment creates an Environment backed by the configured directory.
func NewEnvironment(opts Options) (*Environment, error) {
	defaultName := opts.DefaultProcessName
	if defaultName == "" {
		defaultName = DefaultProcessName()
	}

	scope := opts.Scope
	if scope == "" {
		scope = ScopeApp
	}
	f := filter{scope: scope, defaultName: defaultName, uid: os.Getuid()}

	env := &Environment{defaultName: defaultName}

	switch opts.Backend {
	case BackendGopsutil, "":
		env.directory = &Directory{backend: BackendGopsutil, filter: f, list: listGopsutil}
	case BackendProcfs:
		if !procfsSupported {
			return nil, fmt.Errorf("process directory %q is not supported on this platform", opts.Backend)
		}
		env.directory = &Directory{backend: BackendProcfs, filter: f, list: listProcfs}
	case BackendPS:
		env.directory = &Directory{backend: BackendPS, filter: f, list: listPS}
	case BackendNone:
		// Leave the directory nil: listing is unavailable.
	default:
		return nil, fmt.Errorf("unknown process directory %q", opts.Backend)
	}

	return env, nil
}

// DefaultProcessName implements procdetails.Environment.
func (e *Environment) DefaultProcessName() string {
	return e.defaultName
}

// ProcessDirectory implements procdetails.Environment.
func (e *Environment) ProcessDirectory() procdetails.Directory {
	return e.directory
}

type listFunc func(f filter) ([]*procdetails.RunningProcessInfo, error)

// Directory lists host processes through one backend.
type Directory struct {
	backend Backend
	filter  filter
	list    listFunc
}

// RunningAppProcesses implements procdetails.Directory.
// Backend errors are logged and reported as an empty listing.
func (d *Directory) RunningAppProcesses() []*procdetails.RunningProcessInfo {
	processes, err := d.list(d.filter)
	if err != nil {
		hlog().Debug("can't list processes", "backend", d.backend, "error", err)
		return nil
	}
	return processes
}

// DefaultProcessName derives the application's main process name from the
// running executable.
func DefaultProcessName() string {
	exe, err := os.Executable()
	if err != nil {
		if len(os.Args) == 0 {
			return ""
		}
		return filepath.Base(os.Args[0])
	}
	return filepath.Base(exe)
}
