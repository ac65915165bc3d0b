package hcl

import "github.com/vk/glsipy/internal/config"

// translateFile converts the HCL-specific schema into the agnostic model.
func translateFile(root *fileRoot) *config.Model {
	m := &config.Model{SearchDirs: root.SearchDirs}
	for _, t := range root.Targets {
		m.Targets = append(m.Targets, &config.Target{
			Name:   t.Name,
			Entry:  t.Entry,
			Output: t.Output,
			Minify: t.Minify,
		})
	}
	return m
}
