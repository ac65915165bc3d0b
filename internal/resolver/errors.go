package resolver

import "errors"

var (
	// ErrShaderUndefined is returned when a require in the entry file names a
	// path that exists in none of the search directories.
	ErrShaderUndefined = errors.New("shader undefined")

	// ErrMissingFile is returned when a resolved file cannot be read.
	ErrMissingFile = errors.New("missing file")

	// ErrCyclicRequire is returned when a module is required again while it is
	// still being expanded.
	ErrCyclicRequire = errors.New("cyclic require")
)
