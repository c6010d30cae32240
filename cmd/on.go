package cmd

import "github.com/spf13/cobra"

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Start the timer for your current hat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := engine.On()
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(onCmd)
}
