// Package hostenv implements the procdetails boundary interfaces on top of a
// regular host operating system.
//
// Directory backends:
//   - gopsutil - github.com/shirou/gopsutil/v3/process (default, portable)
//   - procfs - github.com/prometheus/procfs (Linux only)
//   - ps - github.com/mitchellh/go-ps (names only, importance unknown)
//   - none - process listing unavailable
//
// Listing failures are logged at debug level and reported as an empty
// directory, never as errors.
package hostenv
