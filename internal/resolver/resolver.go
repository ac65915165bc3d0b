package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/vk/glsipy/internal/ctxlog"
	"github.com/vk/glsipy/internal/fsutil"
	"github.com/vk/glsipy/internal/inmemorystore"
	"github.com/vk/glsipy/internal/modulestore"
)

// PartialsDir is always searched after the configured directories.
const PartialsDir = "./partials"

// Resolver expands shader entry files. A Resolver is not safe for concurrent
// use; its module store lives as long as the Resolver does.
type Resolver struct {
	searchDirs []string
	store      modulestore.Store
	fs         fsutil.FS
	workDir    string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStore replaces the default in-memory module store.
func WithStore(s modulestore.Store) Option {
	return func(r *Resolver) { r.store = s }
}

// WithFS replaces the host file system.
func WithFS(fsys fsutil.FS) Option {
	return func(r *Resolver) { r.fs = fsys }
}

// WithWorkDir sets the directory entry paths are relative to. It defaults to
// the process working directory.
func WithWorkDir(dir string) Option {
	return func(r *Resolver) { r.workDir = dir }
}

// New creates a Resolver searching dirs, in order, followed by PartialsDir.
func New(dirs []string, opts ...Option) *Resolver {
	r := &Resolver{
		searchDirs: append(slices.Clone(dirs), PartialsDir),
		store:      inmemorystore.New(),
		fs:         fsutil.OS{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SearchDirs returns the directories a root-level require is looked up in.
func (r *Resolver) SearchDirs() []string {
	return slices.Clone(r.searchDirs)
}

// Store returns the module store backing the Resolver.
func (r *Resolver) Store() modulestore.Store {
	return r.store
}

// Result is the fully expanded content of an entry file.
type Result struct {
	Lines []string
	// BaseDir is the directory holding the entry file. Output paths are
	// relative to it.
	BaseDir string
}

// Expand resolves every require reachable from entry, which is relative to
// the working directory.
func (r *Resolver) Expand(ctx context.Context, entry string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	baseDir, rel, err := r.locateEntry(entry)
	if err != nil {
		return nil, err
	}
	logger.Debug("Expanding entry file.", "entry", entry, "base_dir", baseDir)

	st := &runState{
		required: make(map[string]struct{}),
		inFlight: make(map[string]struct{}),
	}
	lines, err := r.expand(ctx, st, frame{root: true, baseDir: baseDir, path: rel})
	if err != nil {
		return nil, err
	}

	logger.Debug("Entry file expanded.", "entry", entry, "lines", len(lines), "cached_modules", r.store.Len())
	return &Result{Lines: lines, BaseDir: baseDir}, nil
}

// Compile expands entry and writes the result to output, which is relative to
// the entry file's directory. It returns the path written. Nothing is written
// when expansion fails.
func (r *Resolver) Compile(ctx context.Context, entry, output string, minify bool) (string, error) {
	res, err := r.Expand(ctx, entry)
	if err != nil {
		return "", err
	}

	outPath := output
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(res.BaseDir, output)
	}
	if err := r.fs.WriteFile(outPath, []byte(Render(res.Lines, minify))); err != nil {
		return "", fmt.Errorf("failed to write compiled shader %s: %w", outPath, err)
	}

	ctxlog.FromContext(ctx).Info("Compiled shader written.", "entry", entry, "output", outPath, "minify", minify)
	return outPath, nil
}

// locateEntry returns the real directory of entry together with entry made
// relative to the working directory.
func (r *Resolver) locateEntry(entry string) (string, string, error) {
	workDir := r.workDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		workDir = wd
	}

	rel := entry
	if filepath.IsAbs(entry) {
		var err error
		if rel, err = filepath.Rel(workDir, entry); err != nil {
			return "", "", fmt.Errorf("entry %s is not reachable from %s: %w", entry, workDir, err)
		}
	}

	abs := filepath.Join(workDir, rel)
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	return filepath.Dir(abs), rel, nil
}
