package hostenv

import (
	"github.com/mrzor/process-details/internal/procdetails"
)

// stateImportance maps a Linux process state letter and nice value to an
// importance class. Unknown states map to 0.
func stateImportance(state string, nice int) int32 {
	if state == "" {
		return 0
	}

	switch state[0] {
	case 'R':
		if nice < 0 {
			return procdetails.ImportanceForeground
		}
		return procdetails.ImportanceVisible
	case 'D':
		return procdetails.ImportancePerceptible
	case 'S':
		return procdetails.ImportanceService
	case 'I':
		return procdetails.ImportanceTopSleeping
	case 'T', 't':
		return procdetails.ImportanceCached
	case 'Z', 'X', 'x':
		return procdetails.ImportanceGone
	default:
		return 0
	}
}
