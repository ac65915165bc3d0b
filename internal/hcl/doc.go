// Package hcl provides the HCL implementation of the config.Loader interface.
// It is responsible for finding project files, parsing them, evaluating their
// expressions and translating the result into the format-agnostic model.
//
// A project file looks like:
//
//	search_dirs = ["others", "${env.SHADER_LIB}"]
//
//	target "main" {
//	  entry  = "shaders/main.frag"
//	  output = "main.min.frag"
//	  minify = true
//	}
//
// Expressions can read the process environment through the "env" object and
// the directory holding the file through "project_dir".
package hcl
