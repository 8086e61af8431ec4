package hostenv

import (
	"fmt"

	"github.com/mrzor/process-details/internal/procdetails"
	"github.com/prometheus/procfs"
)

const procfsSupported = true

func listProcfs(f filter) ([]*procdetails.RunningProcessInfo, error) {
	procs, err := procfs.AllProcs()
	if err != nil {
		return nil, fmt.Errorf("can't read /proc: %w", err)
	}

	log := hlog()
	var out []*procdetails.RunningProcessInfo
	for _, p := range procs {
		stat, err := p.Stat()
		if err != nil {
			log.Debug("can't read process stat. Skipping", "pid", p.PID, "error", err)
			continue
		}

		name := procfsName(p, stat.Comm, f.defaultName)
		if !f.keep(name, func() (int, error) { return procfsUID(p) }) {
			continue
		}

		out = append(out, &procdetails.RunningProcessInfo{
			Name:       name,
			Pid:        int32(p.PID), //nolint:gosec // Linux pids fit in int32
			Importance: stateImportance(stat.State, stat.Nice),
		})
	}
	return out, nil
}

func procfsUID(p procfs.Proc) (int, error) {
	status, err := p.NewStatus()
	if err != nil {
		return 0, err
	}
	return int(status.UIDs[0]), nil //nolint:gosec // uid fits in int
}

// procfsName returns the untruncated process name. Kernel threads and
// processes we may not inspect have no readable cmdline, so those fall back
// to matching comm against the default name.
func procfsName(p procfs.Proc, comm, defaultName string) string {
	if len(comm) < commLen {
		return comm
	}
	cmdline, err := p.CmdLine()
	if err == nil {
		if name := fullName(comm, cmdline); name != comm {
			return name
		}
	}
	return expandShortName(comm, defaultName)
}
