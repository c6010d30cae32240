package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hat/internal/timecalc"
	"github.com/fakeyudi/hat/internal/tracker"
)

var editDescription string

var editCmd = &cobra.Command{
	Use:   "edit <duration>",
	Short: "Change the duration of the last entry of your current hat",
	Long: `Change the duration of the last logged entry of your current hat.

The duration uses Go syntax and may be split over several arguments:
  hat edit 1h 30m
  hat edit 45m -m "code review"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := timecalc.ParseDuration(args)
		if err != nil {
			return &tracker.OpError{Op: "edit", Err: fmt.Errorf("%w: %v", tracker.ErrInvalidDuration, err)}
		}
		res, err := engine.Edit(d, editDescription)
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editDescription, "description", "m", "", "also replace the entry's description")
	rootCmd.AddCommand(editCmd)
}
