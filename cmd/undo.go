package cmd

import "github.com/spf13/cobra"

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Reverse the last new, delete, on, off or edit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := engine.Undo()
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
}
