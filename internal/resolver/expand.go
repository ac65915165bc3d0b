package resolver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/glsipy/internal/ctxlog"
	"github.com/vk/glsipy/internal/fsutil"
	"github.com/vk/glsipy/internal/modulestore"
	"github.com/vk/glsipy/internal/pragma"
)

// runState is shared by every frame of one Expand call.
type runState struct {
	// required holds the raw require arguments already expanded in the entry file.
	required map[string]struct{}
	// inFlight holds the files currently being expanded.
	inFlight map[string]struct{}
}

// frame is one level of the recursive expansion.
type frame struct {
	root    bool
	baseDir string
	path    string
	module  bool
	name    string
	subs    []pragma.Substitution
}

func (r *Resolver) expand(ctx context.Context, st *runState, f frame) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	file := filepath.Join(f.baseDir, "..", f.path)

	if f.module {
		if rec, ok := r.store.Get(ctx, f.name); ok {
			logger.Debug("Module served from cache.", "module", f.name, "lines", len(rec.Content))
			return rec.Content, nil
		}
	}

	if _, busy := st.inFlight[file]; busy {
		return nil, fmt.Errorf("%w: %s", ErrCyclicRequire, file)
	}
	st.inFlight[file] = struct{}{}
	defer delete(st.inFlight, file)

	src, err := fsutil.ReadLines(r.fs, file)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMissingFile, file, err)
	}
	logger.Debug("Expanding file.", "file", file, "module", f.name, "lines", len(src))

	here := filepath.Dir(file)
	var out []string
	for i, text := range src {
		line := pragma.Classify(text)
		last := i == len(src)-1

		switch line.Kind {
		case pragma.Require:
			lines, err := r.require(ctx, st, f, file, here, line)
			if err != nil {
				return nil, err
			}
			out = append(out, lines...)

		case pragma.ExportPoint:
			logger.Debug("Applying substitutions at export point.", "file", file, "count", len(f.subs))
			out = pragma.Apply(out, f.subs)

		case pragma.TerminalExport:
			// Only the final physical line names the module.
			if last && f.module {
				rec := &modulestore.Record{Name: line.Name, Content: out}
				if r.store.Put(ctx, rec) {
					logger.Debug("Module registered.", "module", line.Name, "file", file)
				}
			}

		default:
			out = append(out, text)
		}
	}

	return out, nil
}

// require expands one require line found in file, whose directory is here.
func (r *Resolver) require(ctx context.Context, st *runState, f frame, file, here string, line pragma.Line) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	if f.root {
		if _, dup := st.required[line.Args]; dup {
			logger.Debug("Skipping repeated require.", "alias", line.Alias, "args", line.Args)
			return nil, nil
		}
		st.required[line.Args] = struct{}{}
	}

	args, err := pragma.ParseRequireArgs(line.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	path := args.Path
	if f.root {
		if path, err = r.search(ctx, f.baseDir, args.Path); err != nil {
			return nil, err
		}
	}

	return r.expand(ctx, st, frame{
		baseDir: here,
		path:    path,
		module:  true,
		name:    line.Alias,
		subs:    args.Substitutions,
	})
}

// search returns the first search-directory-prefixed form of path that
// exists one level above baseDir.
func (r *Resolver) search(ctx context.Context, baseDir, path string) (string, error) {
	logger := ctxlog.FromContext(ctx)
	for _, dir := range r.searchDirs {
		candidate := filepath.Join(dir, path)
		if r.fs.Exists(filepath.Join(baseDir, "..", candidate)) {
			logger.Debug("Module located.", "path", path, "search_dir", dir)
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q not found in %v", ErrShaderUndefined, path, r.searchDirs)
}
