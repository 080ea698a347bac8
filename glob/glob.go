// Package glob resolves configured patterns to file-system paths.
package glob

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/projecteru2/cachebust/types"
)

// Globber resolves one pattern to the paths (files and directories) it matches.
// An invalid pattern is an error, never an empty result.
type Globber interface {
	Glob(pattern string) ([]string, error)
}

// Doublestar matches with bmatcuk/doublestar, which adds "**" to the usual
// filepath.Match syntax.
type Doublestar struct{}

// compile-time interface check.
var _ Globber = Doublestar{}

// Glob implements Globber. Errors wrap types.ErrPattern.
func (Doublestar) Glob(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", types.ErrPattern)
	}
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("%w: %q: %w", types.ErrPattern, pattern, doublestar.ErrBadPattern)
	}
	matches, err := doublestar.FilepathGlob(filepath.Clean(pattern))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", types.ErrPattern, pattern, err)
	}
	return matches, nil
}
