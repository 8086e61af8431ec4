// Package procdetails reports which application processes are running and
// which of them is the calling process.
//
// The host is reached through two boundary interfaces:
//   - Environment - the default process name and the process directory
//   - Identity - the caller's pid, optionally its own name (ProcessNamer)
//
// Queries (read-only, never fail):
//   - AppProcesses(env) - every running app process, directory order
//   - CurrentProcess(env, id) - the caller's record, or a pid-only fallback
//
// Nothing is cached: each call re-queries the environment and returns fresh
// values, so concurrent callers share no state.
package procdetails
