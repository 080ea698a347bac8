// Package clean removes fingerprinted files, undoing a fingerprint run.
package clean

import (
	"context"
	"fmt"
	"os"

	units "github.com/docker/go-units"
	"github.com/projecteru2/core/log"

	"github.com/projecteru2/cachebust/config"
	"github.com/projecteru2/cachebust/glob"
	"github.com/projecteru2/cachebust/lock"
	"github.com/projecteru2/cachebust/lock/flock"
	"github.com/projecteru2/cachebust/naming"
	"github.com/projecteru2/cachebust/types"
	"github.com/projecteru2/cachebust/walk"
)

// Cleaner deletes every file whose name carries the marker under the
// configured patterns. Unmarked files, directories, and the manifest itself
// are left alone.
type Cleaner struct {
	conf    *config.Config
	globber glob.Globber
	locker  lock.Locker
}

// New creates a Cleaner. conf must already be validated.
func New(conf *config.Config) (*Cleaner, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is nil")
	}
	return &Cleaner{
		conf:    conf,
		globber: glob.Doublestar{},
		locker:  flock.New(conf.RunLock()),
	}, nil
}

// WithGlobber replaces the pattern resolver.
func (c *Cleaner) WithGlobber(g glob.Globber) *Cleaner {
	c.globber = g
	return c
}

// Run walks every configured pattern and removes marked files. Failures are
// logged, recorded in the report, and skipped; only a lock failure is returned.
func (c *Cleaner) Run(ctx context.Context) (*types.Report, error) {
	report := &types.Report{}
	err := lock.WithLock(ctx, c.locker, func() error {
		w := walk.New(c.globber, walk.ReportTo(report, "clean.walk"), c.conf.Excluded()...)
		for _, pattern := range c.conf.Patterns {
			w.Walk(ctx, pattern, func(ctx context.Context, path string) error {
				return c.cleanFile(ctx, path, report)
			})
		}
		log.WithFunc("clean.Run").Infof(ctx, "deleted %d fingerprinted files (%s), %d failures",
			report.Deleted, units.HumanSize(float64(report.Bytes)), len(report.Failures))
		return nil
	})
	return report, err
}

func (c *Cleaner) cleanFile(ctx context.Context, path string, report *types.Report) error {
	if !naming.IsFingerprinted(path, c.conf.Marker) {
		return nil
	}
	var size int64
	if info, err := os.Lstat(path); err == nil {
		size = info.Size()
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: delete: %w", types.ErrIO, err)
	}
	log.WithFunc("clean.cleanFile").Debugf(ctx, "deleted %s", path)
	report.Deleted++
	report.Bytes += size
	return nil
}
