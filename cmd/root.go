package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cachebust",
		Short:        "Cachebust - content-hash asset fingerprinting",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("marker", "", "override the fingerprint marker (default \"cached\")")
	cmd.PersistentFlags().String("algorithm", "", "override the digest algorithm: sha256, sha384, sha512, blake3, md5")
	cmd.PersistentFlags().String("asset-path", "", "override the root manifest entries are relative to")
	cmd.PersistentFlags().String("manifest", "", "override the manifest output path")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		fingerprintCmd,
		cleanCmd,
		versionCmd,
	)

	return cmd
}()

// Execute is the main entry point called from main.go.
func Execute() error {
	return rootCmd.Execute()
}
