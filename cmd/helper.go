package cmd

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	"github.com/projecteru2/cachebust/config"
	"github.com/projecteru2/cachebust/types"
)

// loadConfig reads the config file named on the command line, applying flag
// and environment overrides, and sets up logging from it.
func loadConfig(ctx context.Context, cmd *cobra.Command, path string) (*config.Config, error) {
	conf, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := log.SetupLog(ctx, &conf.Log, ""); err != nil {
		return nil, fmt.Errorf("%w: setup log: %w", types.ErrConfig, err)
	}
	for _, key := range conf.Ignored {
		log.WithFunc("cmd.loadConfig").Warnf(ctx, "%s: %q is not supported, fingerprinted copies are written beside their originals", path, key)
	}
	return conf, nil
}

// printFailures lists per-entry failures after a run so they are visible even
// when logging is quiet.
func printFailures(cmd *cobra.Command, report *types.Report) {
	if report == nil || report.OK() {
		return
	}
	out := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(out, "%d entries skipped:\n", len(report.Failures))
	for _, f := range report.Failures {
		_, _ = fmt.Fprintf(out, "  %s\n", f.Error())
	}
}
