package procdetails

// AppProcesses returns the details of all running app processes, in the
// order the process directory reported them.
func AppProcesses(env Environment) []Process {
	defaultProcessName := env.DefaultProcessName()

	var running []*RunningProcessInfo
	if directory := env.ProcessDirectory(); directory != nil {
		running = directory.RunningAppProcesses()
	}

	processes := make([]Process, 0, len(running))
	for _, info := range running {
		if info == nil {
			continue
		}
		processes = append(processes, Process{
			Name:             info.Name,
			Pid:              info.Pid,
			Importance:       info.Importance,
			IsDefaultProcess: info.Name == defaultProcessName,
		})
	}
	return processes
}

// CurrentProcess returns the details of the calling process.
//
// If the caller is missing from the process directory, the returned record
// carries only its pid and, when the platform supports it, its name.
func CurrentProcess(env Environment, id Identity) Process {
	pid := id.Pid()
	for _, process := range AppProcesses(env) {
		if process.Pid == pid {
			return process
		}
	}
	return buildProcess(processName(id), pid)
}

// processName returns the calling process's name, or "" when the identity
// has no way to report it.
func processName(id Identity) string {
	if namer, ok := id.(ProcessNamer); ok {
		return namer.ProcessName()
	}
	return ""
}

func buildProcess(name string, pid int32) Process {
	return Process{
		Name:             name,
		Pid:              pid,
		Importance:       0,
		IsDefaultProcess: false,
	}
}

// Collector binds an Environment and an Identity so callers holding both can
// query without passing them around.
type Collector struct {
	env Environment
	id  Identity
}

// NewCollector creates a new Collector.
func NewCollector(env Environment, id Identity) *Collector {
	return &Collector{env: env, id: id}
}

// AppProcesses returns the details of all running app processes.
func (c *Collector) AppProcesses() []Process {
	return AppProcesses(c.env)
}

// CurrentProcess returns the details of the calling process.
func (c *Collector) CurrentProcess() Process {
	return CurrentProcess(c.env, c.id)
}
