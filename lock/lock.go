// Package lock serializes runs that mutate the same asset tree.
package lock

import (
	"context"
	"fmt"
)

// Locker provides mutual exclusion with context support.
type Locker interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// WithLock holds l for the duration of fn. The lock is released whether or
// not fn fails; a release error is returned only when fn succeeded.
func WithLock(ctx context.Context, l Locker, fn func() error) (err error) {
	if err := l.Lock(ctx); err != nil {
		return err
	}
	defer func() {
		if uerr := l.Unlock(ctx); uerr != nil && err == nil {
			err = fmt.Errorf("unlock: %w", uerr)
		}
	}()
	return fn()
}
