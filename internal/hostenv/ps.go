package hostenv

import (
	"fmt"

	"github.com/mitchellh/go-ps"
	"github.com/mrzor/process-details/internal/procdetails"
)

// listPS lists processes with go-ps. It only knows names and pids, so
// importance is always 0 and ScopeUser behaves like ScopeApp. Names are the
// kernel's truncated comm; one that prefixes the default name is reported
// as the default name.
func listPS(f filter) ([]*procdetails.RunningProcessInfo, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("error retrieving process list: %w", err)
	}

	var out []*procdetails.RunningProcessInfo
	for _, p := range procs {
		name := expandShortName(p.Executable(), f.defaultName)
		if !f.keep(name, nil) {
			continue
		}
		out = append(out, &procdetails.RunningProcessInfo{
			Name: name,
			Pid:  int32(p.Pid()), //nolint:gosec // pids fit in int32
		})
	}
	return out, nil
}
