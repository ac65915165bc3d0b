package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/glsipy/internal/config"
	"github.com/vk/glsipy/internal/ctxlog"
	"github.com/vk/glsipy/internal/resolver"
)

// Run compiles the command line entry, if any, followed by every project
// target in declaration order. All targets share one resolver and therefore
// one module cache. The first failure stops the run.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	targets := a.targets()
	if len(targets) == 0 {
		logger.Warn("No targets to compile.")
		return nil
	}

	searchDirs := a.config.SearchDirs
	if len(a.project.SearchDirs) > 0 {
		searchDirs = a.project.SearchDirs
	}

	var opts []resolver.Option
	if a.config.WorkDir != "" {
		opts = append(opts, resolver.WithWorkDir(a.config.WorkDir))
	}
	r := resolver.New(searchDirs, opts...)
	logger.Debug("Resolver configured.", "search_dirs", r.SearchDirs())

	for _, t := range targets {
		tctx := ctxlog.With(ctx, "target", t.Name)
		if _, err := r.Compile(tctx, t.Entry, t.Output, t.Minify); err != nil {
			return fmt.Errorf("target %s: %w", t.Name, err)
		}
	}

	logger.Info("🏁 Compilation finished.", "targets", len(targets), "cached_modules", r.Store().Len())
	return nil
}

// targets lists what Run compiles: the command line entry first.
func (a *App) targets() []*config.Target {
	var targets []*config.Target
	if a.config.EntryPath != "" {
		targets = append(targets, &config.Target{
			Name:   "cli",
			Entry:  a.config.EntryPath,
			Output: a.config.OutputPath,
			Minify: a.config.Minify,
		})
	}
	return append(targets, a.project.Targets...)
}
