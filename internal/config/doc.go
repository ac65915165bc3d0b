// Package config defines the format-agnostic model of a glsipy project file,
// along with the Loader interface its concrete readers implement.
//
// A project file lists build targets, each an entry shader compiled to an
// output file, plus the search directories used for every target. The HCL
// and YAML readers live in separate packages.
package config
