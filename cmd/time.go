package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/hat/internal/report"
)

var timeFormat string

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Show the entries logged for your current hat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := report.New(formatOrDefault(timeFormat))
		if err != nil {
			return err
		}
		rep, err := engine.Time()
		if err != nil {
			return err
		}
		return r.RenderTime(cmd.OutOrStdout(), rep)
	},
}

func init() {
	timeCmd.Flags().StringVar(&timeFormat, "format", "", "output format: text, json or markdown")
	rootCmd.AddCommand(timeCmd)
}
