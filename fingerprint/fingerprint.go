// Package fingerprint copies every matched asset to a sibling whose name
// embeds the content digest and the marker, and writes a manifest mapping
// original paths to fingerprinted ones.
package fingerprint

import (
	"context"
	"fmt"

	units "github.com/docker/go-units"
	"github.com/projecteru2/core/log"

	"github.com/projecteru2/cachebust/config"
	"github.com/projecteru2/cachebust/digest"
	"github.com/projecteru2/cachebust/glob"
	"github.com/projecteru2/cachebust/lock"
	"github.com/projecteru2/cachebust/lock/flock"
	"github.com/projecteru2/cachebust/manifest"
	"github.com/projecteru2/cachebust/naming"
	"github.com/projecteru2/cachebust/types"
	"github.com/projecteru2/cachebust/utils"
	"github.com/projecteru2/cachebust/walk"
)

// Fingerprinter runs fingerprint passes for one configuration.
type Fingerprinter struct {
	conf    *config.Config
	hasher  *digest.Hasher
	globber glob.Globber
	locker  lock.Locker
}

// New creates a Fingerprinter. conf must already be validated.
func New(conf *config.Config) (*Fingerprinter, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is nil")
	}
	hasher, err := digest.NewHasher(conf.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConfig, err)
	}
	return &Fingerprinter{
		conf:    conf,
		hasher:  hasher,
		globber: glob.Doublestar{},
		locker:  flock.New(conf.RunLock()),
	}, nil
}

// WithGlobber replaces the pattern resolver.
func (f *Fingerprinter) WithGlobber(g glob.Globber) *Fingerprinter {
	f.globber = g
	return f
}

// Run walks every configured pattern, fingerprints each unmarked file, and
// writes the manifest, replacing any previous one. Per-file and per-pattern
// failures are logged, recorded in the report, and skipped. A manifest
// write failure is returned as an error wrapping types.ErrManifestWrite.
func (f *Fingerprinter) Run(ctx context.Context) (*types.Report, error) {
	report := &types.Report{}
	err := lock.WithLock(ctx, f.locker, func() error {
		return f.run(ctx, report)
	})
	return report, err
}

func (f *Fingerprinter) run(ctx context.Context, report *types.Report) error {
	logger := log.WithFunc("fingerprint.Run")
	acc := manifest.New(f.conf.AssetPath)
	w := walk.New(f.globber, walk.ReportTo(report, "fingerprint.walk"), f.conf.Excluded()...)

	for _, pattern := range f.conf.Patterns {
		w.Walk(ctx, pattern, func(ctx context.Context, path string) error {
			return f.fingerprintFile(ctx, path, acc, report)
		})
	}

	if err := acc.Write(f.conf.Manifest, f.conf.Marker); err != nil {
		logger.Errorf(ctx, err, "write manifest %s", f.conf.Manifest)
		return err
	}
	logger.Infof(ctx, "fingerprinted %d files (%s hashed), skipped %d already fingerprinted, %d failures; manifest %s has %d entries",
		report.Fingerprinted, units.HumanSize(float64(report.Bytes)), report.Skipped, len(report.Failures), f.conf.Manifest, acc.Len())
	return nil
}

// fingerprintFile handles one file: skip if marked, otherwise hash, copy to
// the fingerprinted sibling, and record the pair.
func (f *Fingerprinter) fingerprintFile(ctx context.Context, path string, acc *manifest.Manifest, report *types.Report) error {
	logger := log.WithFunc("fingerprint.fingerprintFile")
	if naming.IsFingerprinted(path, f.conf.Marker) {
		logger.Debugf(ctx, "skip %s: already fingerprinted", path)
		report.Skipped++
		return nil
	}

	d, size, err := f.hasher.HashFile(path)
	if err != nil {
		return err
	}
	target := naming.TargetPath(path, d.Hex(), f.conf.Marker)

	// always rewritten so a damaged copy from an earlier run is repaired
	if _, err := utils.CopyFile(path, target); err != nil {
		return fmt.Errorf("%w: copy %s: %w", types.ErrIO, path, err)
	}
	logger.Debugf(ctx, "%s -> %s", path, target)

	acc.Add(path, target)
	report.Fingerprinted++
	report.Bytes += size
	return nil
}
