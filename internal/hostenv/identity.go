package hostenv

import (
	"os"

	"github.com/mrzor/process-details/internal/procdetails"
	"github.com/shirou/gopsutil/v3/process"
)

// Identity reports the calling process's pid only.
type Identity struct{}

// Pid implements procdetails.Identity.
func (Identity) Pid() int32 {
	return int32(os.Getpid()) //nolint:gosec // pids fit in int32
}

// NamedIdentity also reports the calling process's own name.
type NamedIdentity struct {
	Identity
}

// ProcessName implements procdetails.ProcessNamer. It returns "" if the
// name cannot be read.
func (n NamedIdentity) ProcessName() string {
	p, err := process.NewProcess(n.Pid())
	if err != nil {
		hlog().Debug("can't inspect own process", "error", err)
		return ""
	}
	name, err := p.Name()
	if err != nil {
		hlog().Debug("can't read own process name", "error", err)
		return ""
	}
	return name
}

// NewIdentity returns an identity that can report its own name only when
// selfName is set.
func NewIdentity(selfName bool) procdetails.Identity {
	if selfName {
		return NamedIdentity{}
	}
	return Identity{}
}
