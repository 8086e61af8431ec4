package attributes

import (
	"os"
	"strings"

	"github.com/mrzor/process-details/internal/procdetails"
)

// Subject is what expressions are evaluated against.
type Subject struct {
	Current   procdetails.Process
	Processes []procdetails.Process
	Environ   map[string]string
}

// NewSubject builds a Subject from collected process details and the
// current host environment variables.
func NewSubject(current procdetails.Process, processes []procdetails.Process) *Subject {
	return &Subject{
		Current:   current,
		Processes: processes,
		Environ:   parseEnviron(os.Environ()),
	}
}

// typeEnv declares the variable types for expression compilation.
func typeEnv() map[string]interface{} {
	return map[string]interface{}{
		"name":       "",
		"pid":        0,
		"importance": 0,
		"is_default": false,
		"processes":  0,
		"names":      []string{},
		"env":        map[string]string{},
	}
}

func (s *Subject) exprEnv() map[string]interface{} {
	names := make([]string, len(s.Processes))
	for i, p := range s.Processes {
		names[i] = p.Name
	}

	environ := s.Environ
	if environ == nil {
		environ = map[string]string{}
	}

	return map[string]interface{}{
		"name":       s.Current.Name,
		"pid":        int(s.Current.Pid),
		"importance": int(s.Current.Importance),
		"is_default": s.Current.IsDefaultProcess,
		"processes":  len(s.Processes),
		"names":      names,
		"env":        environ,
	}
}

// parseEnviron parses KEY=VALUE pairs. Entries without '=' or with an empty
// key are dropped; the last duplicate wins.
func parseEnviron(raw []string) map[string]string {
	result := make(map[string]string, len(raw))
	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		result[key] = value
	}
	return result
}
