package cmd

import "github.com/spf13/cobra"

var newCmd = &cobra.Command{
	Use:   "new <project>",
	Short: "Create a project and make it your current hat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := engine.New(args[0])
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
