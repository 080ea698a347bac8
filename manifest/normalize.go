package manifest

import (
	"path/filepath"
	"strings"
)

// Relativize returns the manifest-facing form of path.
//
// When assetRoot is set and path lies under it, the result is path relative to
// assetRoot. Otherwise the result is path made absolute. Both forms use
// forward slashes so manifest keys do not depend on the host separator or on
// how a pattern was spelled on the command line.
func Relativize(path, assetRoot string) string {
	abs := absolute(path)
	if assetRoot != "" {
		if rel, ok := within(absolute(assetRoot), abs); ok {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(abs)
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// within returns path relative to dir when path is strictly below dir.
func within(dir, path string) (string, bool) {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
