package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all top-level content of a project file.
type fileRoot struct {
	SearchDirs []string  `hcl:"search_dirs,optional"`
	Targets    []*Target `hcl:"target,block"`
	Remain     hcl.Body  `hcl:",remain"`
}

// Target represents a `target` block.
type Target struct {
	Name   string `hcl:"name,label"`
	Entry  string `hcl:"entry"`
	Output string `hcl:"output"`
	Minify bool   `hcl:"minify,optional"`
}
