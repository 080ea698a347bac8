package flock

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"github.com/projecteru2/cachebust/lock"
)

const retryDelay = 100 * time.Millisecond

// compile-time interface check.
var _ lock.Locker = (*Lock)(nil)

// Lock is a cross-process run lock backed by flock(2). The lock file is
// created on first use and left in place afterwards. Its directory must
// already exist.
type Lock struct {
	fl *flock.Flock
}

// New creates a Lock on path.
func New(path string) *Lock {
	return &Lock{fl: flock.New(path)}
}

// Lock acquires the exclusive lock, retrying until it is free or ctx is done.
func (l *Lock) Lock(ctx context.Context) error {
	locked, err := l.fl.TryLockContext(ctx, retryDelay)
	if err != nil {
		return fmt.Errorf("acquire run lock %s: %w", l.fl.Path(), err)
	}
	if !locked {
		return fmt.Errorf("acquire run lock %s: context done", l.fl.Path())
	}
	return nil
}

// Unlock releases the lock.
func (l *Lock) Unlock(_ context.Context) error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release run lock %s: %w", l.fl.Path(), err)
	}
	return nil
}
