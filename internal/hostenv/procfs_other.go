//go:build !linux

package hostenv

import (
	"errors"

	"github.com/mrzor/process-details/internal/procdetails"
)

const procfsSupported = false

func listProcfs(_ filter) ([]*procdetails.RunningProcessInfo, error) {
	return nil, errors.New("procfs is only available on linux")
}
