// Package walk resolves patterns and visits every regular file beneath the
// matched paths. It knows nothing about fingerprinting or cleaning: callers
// pass a Visitor for the per-file action.
package walk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/projecteru2/cachebust/glob"
	"github.com/projecteru2/cachebust/types"
)

// Visitor handles one file. A returned error is reported and the walk moves
// on to the next file.
type Visitor func(ctx context.Context, path string) error

// Reporter receives every failure met during a walk: pattern errors, stat and
// directory-read errors, and errors returned by the Visitor.
type Reporter func(ctx context.Context, path string, err error)

// Walker drives pattern resolution and depth-first traversal.
type Walker struct {
	globber glob.Globber
	report  Reporter
	exclude map[string]struct{}
}

// New creates a Walker. Paths in exclude (files or directories) are never
// visited or descended into.
func New(g glob.Globber, report Reporter, exclude ...string) *Walker {
	w := &Walker{globber: g, report: report, exclude: make(map[string]struct{}, len(exclude))}
	for _, p := range exclude {
		if p != "" {
			w.exclude[abs(p)] = struct{}{}
		}
	}
	return w
}

// Walk resolves pattern and visits each file under each match. Matched
// directories are descended into; symlinks found inside a directory are
// handed to the Visitor as files and never followed as directories.
func (w *Walker) Walk(ctx context.Context, pattern string, visit Visitor) {
	matches, err := w.globber.Glob(pattern)
	if err != nil {
		w.report(ctx, pattern, err)
		return
	}
	for _, m := range matches {
		w.walkMatch(ctx, m, visit)
	}
}

func (w *Walker) walkMatch(ctx context.Context, root string, visit Visitor) {
	if w.excluded(root) {
		return
	}
	info, err := os.Stat(root)
	if err != nil {
		w.report(ctx, root, fmt.Errorf("%w: stat: %w", types.ErrIO, err))
		return
	}
	if !info.IsDir() {
		w.visitFile(ctx, root, visit)
		return
	}

	// Explicit stack of directories still to read; each carries its full path.
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			w.report(ctx, dir, fmt.Errorf("%w: read directory: %w", types.ErrIO, err))
			continue
		}
		var subdirs []string
		for _, e := range entries {
			p := filepath.Join(dir, e.Name())
			if w.excluded(p) {
				continue
			}
			if e.IsDir() {
				subdirs = append(subdirs, p)
				continue
			}
			w.visitFile(ctx, p, visit)
		}
		// reversed so subdirectories pop in name order
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
}

func (w *Walker) visitFile(ctx context.Context, path string, visit Visitor) {
	if w.excluded(path) {
		return
	}
	if err := visit(ctx, path); err != nil {
		w.report(ctx, path, err)
	}
}

func (w *Walker) excluded(path string) bool {
	if len(w.exclude) == 0 {
		return false
	}
	_, ok := w.exclude[abs(path)]
	return ok
}

func abs(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}
