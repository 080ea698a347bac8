package types

import "errors"

// Error classes. Concrete errors wrap one of these with %w so callers can
// classify them with errors.Is.
var (
	// ErrConfig: config file missing, unparsable, or invalid. Fatal before traversal.
	ErrConfig = errors.New("config error")
	// ErrPattern: a glob expression failed to compile or evaluate. That pattern is skipped.
	ErrPattern = errors.New("pattern error")
	// ErrIO: open/read/copy/delete/mkdir failure. That file or subtree is skipped.
	ErrIO = errors.New("io error")
	// ErrManifestWrite: the manifest could not be created or written. Fatal for the run.
	ErrManifestWrite = errors.New("manifest write error")
)
