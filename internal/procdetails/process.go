package procdetails

// Process describes one running application process as it appears in a
// crash report. Values are snapshots and are never updated in place.
type Process struct {
	Name             string `json:"name"`               // Empty only when the host could not report it
	Pid              int32  `json:"pid"`                // OS process identifier
	Importance       int32  `json:"importance"`         // Importance class, 0 when unknown
	IsDefaultProcess bool   `json:"is_default_process"` // Name matches the application's default process name
}

// RunningProcessInfo is a raw entry returned by a process directory.
type RunningProcessInfo struct {
	Name       string
	Pid        int32
	Importance int32
}

// Directory lists the application's running processes.
// The returned slice may be nil and may contain nil entries.
type Directory interface {
	RunningAppProcesses() []*RunningProcessInfo
}

// Environment is the host the application runs in.
type Environment interface {
	// DefaultProcessName returns the name of the application's main process.
	DefaultProcessName() string
	// ProcessDirectory returns nil when process listing is unavailable.
	ProcessDirectory() Directory
}

// Identity reports who the calling process is.
type Identity interface {
	Pid() int32
}

// ProcessNamer is implemented by identities whose platform can report the
// calling process's own name.
type ProcessNamer interface {
	ProcessName() string
}
