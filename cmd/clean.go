package cmd

import (
	"github.com/spf13/cobra"

	"github.com/projecteru2/cachebust/clean"
)

var cleanCmd = &cobra.Command{
	Use:   "clean CONFIG",
	Short: "Delete every fingerprinted file under the configured patterns",
	Args:  cobra.ExactArgs(1),
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	conf, err := loadConfig(ctx, cmd, args[0])
	if err != nil {
		return err
	}
	c, err := clean.New(conf)
	if err != nil {
		return err
	}
	report, err := c.Run(ctx)
	printFailures(cmd, report)
	return err
}
