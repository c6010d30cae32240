package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var offCmd = &cobra.Command{
	Use:   "off <description>",
	Short: "Stop the timer and log the elapsed time",
	Long: `Stop the timer and log the elapsed time against your current hat. The
description may span several arguments: hat off wrote the release notes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := engine.Off(strings.Join(args, " "))
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(offCmd)
}
