package hostenv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Scope selects which host processes belong to the application.
type Scope string

const (
	// ScopeApp keeps the default process and its "<default>:<suffix>" siblings.
	ScopeApp Scope = "app"
	// ScopeUser keeps processes owned by the caller's real uid.
	ScopeUser Scope = "user"
	// ScopeAll keeps every process.
	ScopeAll Scope = "all"
)

// ParseScope parses a scope name. An empty string selects ScopeApp.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeApp:
		return ScopeApp, nil
	case ScopeUser:
		return ScopeUser, nil
	case ScopeAll:
		return ScopeAll, nil
	default:
		return "", fmt.Errorf("invalid scope %q (want app, user or all)", s)
	}
}

type filter struct {
	scope       Scope
	defaultName string
	uid         int
}

// keep reports whether a process belongs to the application.
// uid may be nil when the backend cannot report owners, in which case
// ScopeUser degrades to ScopeApp.
func (f filter) keep(name string, uid func() (int, error)) bool {
	switch f.scope {
	case ScopeAll:
		return true
	case ScopeUser:
		if uid != nil {
			owner, err := uid()
			if err == nil {
				return owner == f.uid
			}
		}
		return isAppProcess(name, f.defaultName)
	default:
		return isAppProcess(name, f.defaultName)
	}
}

// isAppProcess matches the default process and named sub-processes such as
// "com.app:remote".
func isAppProcess(name, defaultName string) bool {
	if defaultName == "" {
		return false
	}
	return name == defaultName || strings.HasPrefix(name, defaultName+":")
}

// commLen is the length the kernel truncates process names to
// (TASK_COMM_LEN - 1 on Linux).
const commLen = 15

// fullName rebuilds a truncated comm from the first cmdline argument,
// the same way gopsutil does. comm is returned unchanged when it was not
// truncated or the cmdline does not extend it.
func fullName(comm string, cmdline []string) string {
	if len(comm) < commLen || len(cmdline) == 0 {
		return comm
	}
	extended := filepath.Base(cmdline[0])
	if strings.HasPrefix(extended, comm) {
		return extended
	}
	return comm
}

// expandShortName maps a truncated name back to defaultName when it is a
// prefix of it. Backends that only see comm use this so app scoping and
// default detection still work for long names.
func expandShortName(name, defaultName string) string {
	if len(name) < commLen || len(defaultName) <= len(name) {
		return name
	}
	if strings.HasPrefix(defaultName, name) {
		return defaultName
	}
	return name
}
