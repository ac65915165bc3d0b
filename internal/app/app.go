package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/glsipy/internal/config"
	"github.com/vk/glsipy/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	project *config.Model
}

// NewApp is the constructor for the main application. It builds the App's
// own logger and loads the project config, if one is configured.
func NewApp(outW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		project: &config.Model{},
	}

	if appConfig.ConfigPath != "" {
		path := appConfig.ConfigPath
		if appConfig.WorkDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(appConfig.WorkDir, path)
		}
		project, err := loadProject(ctxlog.WithLogger(context.Background(), logger), path)
		if err != nil {
			return nil, err
		}
		a.project = project
		logger.Debug("Project config loaded.", "path", path, "targets", len(project.Targets))
	}

	return a, nil
}

// Project returns the loaded project model. This is primarily for testing.
func (a *App) Project() *config.Model {
	return a.project
}
