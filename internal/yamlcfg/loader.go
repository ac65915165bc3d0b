// Package yamlcfg provides the YAML implementation of the config.Loader
// interface, for projects that keep their build settings next to other YAML
// tooling:
//
//	search_dirs: [others, $SHADER_LIB/common]
//	targets:
//	  - name: main
//	    entry: shaders/main.frag
//	    output: main.min.frag
//	    minify: true
//
// Environment variables in search_dirs, entry and output are expanded.
package yamlcfg

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/glsipy/internal/config"
	"github.com/vk/glsipy/internal/ctxlog"
	"github.com/vk/glsipy/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions recognised as YAML project files.
var Extensions = []string{".yaml", ".yml"}

type fileRoot struct {
	SearchDirs []string  `yaml:"search_dirs,omitempty"`
	Targets    []*target `yaml:"targets"`
}

type target struct {
	Name   string `yaml:"name"`
	Entry  string `yaml:"entry"`
	Output string `yaml:"output"`
	Minify bool   `yaml:"minify,omitempty"`
}

// Loader reads YAML project files.
type Loader struct {
	getenv func(string) string
}

// NewLoader creates a new YAML project file loader.
func NewLoader() *Loader {
	return &Loader{getenv: os.Getenv}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every YAML file under paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := &config.Model{}
	for _, path := range paths {
		files, err := l.expand(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			m, err := l.loadFile(file)
			if err != nil {
				return nil, err
			}
			model.Merge(m)
			logger.Debug("Loaded project file.", "file", file, "targets", len(m.Targets))
		}
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project configuration: %w", err)
	}
	return model, nil
}

func (l *Loader) expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return fsutil.FindFilesByExtension(path, Extensions...)
}

func (l *Loader) loadFile(path string) (*config.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", path, err)
	}

	var root fileRoot
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	m := &config.Model{}
	for _, dir := range root.SearchDirs {
		m.SearchDirs = append(m.SearchDirs, os.Expand(dir, l.getenv))
	}
	for i, t := range root.Targets {
		if t == nil {
			return nil, fmt.Errorf("%s: targets[%d] is empty", path, i)
		}
		m.Targets = append(m.Targets, &config.Target{
			Name:   t.Name,
			Entry:  os.Expand(t.Entry, l.getenv),
			Output: os.Expand(t.Output, l.getenv),
			Minify: t.Minify,
		})
	}
	return m, nil
}
