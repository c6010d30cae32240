package cmd

import "github.com/spf13/cobra"

var deleteCmd = &cobra.Command{
	Use:     "delete <project>",
	Aliases: []string{"rm"},
	Short:   "Delete a project and all of its entries",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := engine.Delete(args[0])
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
