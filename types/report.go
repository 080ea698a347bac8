package types

import "fmt"

// Failure records one per-file, per-subtree, or per-pattern error that was
// reported and skipped during a run.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string { return fmt.Sprintf("%s: %v", f.Path, f.Err) }

// Report summarises a fingerprint or clean run.
type Report struct {
	Fingerprinted int   // fingerprinted copies written or confirmed present
	Skipped       int   // files skipped because their name already carries the marker
	Deleted       int   // marked files removed by clean
	Bytes         int64 // bytes hashed (fingerprint) or freed (clean)
	Failures      []Failure
}

// Fail appends a failure to the report.
func (r *Report) Fail(path string, err error) {
	r.Failures = append(r.Failures, Failure{Path: path, Err: err})
}

// OK reports whether the run completed without any per-entry failure.
func (r *Report) OK() bool { return len(r.Failures) == 0 }
