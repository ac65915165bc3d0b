package config

import (
	"errors"
	"fmt"
)

// Model is the unified, format-agnostic representation of a project file.
type Model struct {
	// SearchDirs replaces the command line search directories when set.
	SearchDirs []string
	Targets    []*Target
}

// Target is one entry shader and where its compiled form goes.
type Target struct {
	Name string
	// Entry is relative to the working directory.
	Entry string
	// Output is relative to the entry file's directory.
	Output string
	Minify bool
}

// Merge appends other's targets to m. Search directories from other replace
// those of m when other declares any.
func (m *Model) Merge(other *Model) {
	if len(other.SearchDirs) > 0 {
		m.SearchDirs = other.SearchDirs
	}
	m.Targets = append(m.Targets, other.Targets...)
}

// Validate checks that every target is complete and uniquely named.
func (m *Model) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(m.Targets))
	for i, t := range m.Targets {
		label := t.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
			errs = append(errs, fmt.Errorf("target %s: name is required", label))
		} else if _, dup := seen[t.Name]; dup {
			errs = append(errs, fmt.Errorf("target %s: declared more than once", label))
		}
		seen[t.Name] = struct{}{}

		if t.Entry == "" {
			errs = append(errs, fmt.Errorf("target %s: entry is required", label))
		}
		if t.Output == "" {
			errs = append(errs, fmt.Errorf("target %s: output is required", label))
		}
	}
	return errors.Join(errs...)
}
