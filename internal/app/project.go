package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/glsipy/internal/config"
	"github.com/vk/glsipy/internal/hcl"
	"github.com/vk/glsipy/internal/yamlcfg"
)

// loadProject reads the project file or directory at path. Directories may
// mix HCL and YAML files.
func loadProject(ctx context.Context, path string) (*config.Model, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	var loaders []config.Loader
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case info.IsDir():
		loaders = []config.Loader{hcl.NewLoader(), yamlcfg.NewLoader()}
	case slices.Contains(yamlcfg.Extensions, ext):
		loaders = []config.Loader{yamlcfg.NewLoader()}
	default:
		loaders = []config.Loader{hcl.NewLoader()}
	}

	model := &config.Model{}
	for _, l := range loaders {
		m, err := l.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load project config: %w", err)
		}
		model.Merge(m)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	return model, nil
}
