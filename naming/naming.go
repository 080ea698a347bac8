// Package naming derives fingerprinted file names and recognises files that
// already carry the marker. All functions are pure string/path operations.
package naming

import (
	"path/filepath"
	"strings"
)

// DefaultMarker is the infix used when no marker is configured.
const DefaultMarker = "cached"

// Split separates a base name into stem and extension using the last dot.
// A name with no dot, a leading dot only (".env"), or a trailing dot has no
// extension.
func Split(base string) (stem, ext string) {
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return base, ""
	}
	return base[:i], base[i+1:]
}

// BuildName renders <stem>.<digest>.<marker>.<ext>, or <stem>.<digest>.<marker>
// when ext is empty.
func BuildName(stem, digest, marker, ext string) string {
	name := stem + "." + digest + "." + marker
	if ext != "" {
		name += "." + ext
	}
	return name
}

// IsFingerprinted reports whether the base name of path contains marker.
//
// This is a plain substring test: "cached-report.txt" counts as fingerprinted
// under the default marker. The whole base name is checked, not only the stem,
// so extension-less outputs like "README.<digest>.cached" are recognised too.
func IsFingerprinted(path, marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(filepath.Base(path), marker)
}

// TargetPath returns the fingerprinted sibling of path: same parent directory,
// name built from path's stem and extension.
func TargetPath(path, digest, marker string) string {
	stem, ext := Split(filepath.Base(path))
	return filepath.Join(filepath.Dir(path), BuildName(stem, digest, marker, ext))
}
