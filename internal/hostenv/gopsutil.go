package hostenv

import (
	"fmt"

	"github.com/mrzor/process-details/internal/procdetails"
	"github.com/shirou/gopsutil/v3/process"
)

// gopsutil reports states as words; map them back to the kernel letters.
var gopsutilStates = map[string]string{
	process.Running: "R",
	process.Blocked: "D",
	process.Sleep:   "S",
	process.Idle:    "I",
	process.Stop:    "T",
	process.Zombie:  "Z",
}

func listGopsutil(f filter) ([]*procdetails.RunningProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("can't get processes: %w", err)
	}

	log := hlog()
	var out []*procdetails.RunningProcessInfo
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// Exited between listing and inspection.
			log.Debug("can't read process name. Skipping", "pid", p.Pid, "error", err)
			continue
		}

		if !f.keep(name, func() (int, error) { return gopsutilUID(p) }) {
			continue
		}

		out = append(out, &procdetails.RunningProcessInfo{
			Name:       name,
			Pid:        p.Pid,
			Importance: gopsutilImportance(p),
		})
	}
	return out, nil
}

func gopsutilUID(p *process.Process) (int, error) {
	uids, err := p.Uids()
	if err != nil {
		return 0, err
	}
	if len(uids) == 0 {
		return 0, fmt.Errorf("no uids for pid %d", p.Pid)
	}
	return int(uids[0]), nil
}

func gopsutilImportance(p *process.Process) int32 {
	status, err := p.Status()
	if err != nil || len(status) == 0 {
		return 0
	}
	nice, err := p.Nice()
	if err != nil {
		nice = 0
	}
	return stateImportance(gopsutilStates[status[0]], int(nice))
}
