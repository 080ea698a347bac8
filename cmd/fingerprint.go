package cmd

import (
	"github.com/spf13/cobra"

	"github.com/projecteru2/cachebust/fingerprint"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint CONFIG",
	Short: "Copy matched assets to content-hashed names and write the manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runFingerprint,
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	conf, err := loadConfig(ctx, cmd, args[0])
	if err != nil {
		return err
	}
	f, err := fingerprint.New(conf)
	if err != nil {
		return err
	}
	report, err := f.Run(ctx)
	printFailures(cmd, report)
	return err
}
