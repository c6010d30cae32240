package cmd

import "github.com/spf13/cobra"

var switchCmd = &cobra.Command{
	Use:     "switch <project>",
	Aliases: []string{"use"},
	Short:   "Change your current hat",
	Long: `Change your current hat. "hat switch acme" is the same as "hat acme"; use the
long form for projects whose name collides with a command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSwitch(cmd, args[0])
	},
}

func runSwitch(cmd *cobra.Command, name string) error {
	res, err := engine.Switch(name)
	if err != nil {
		return err
	}
	printResult(cmd, res)
	return nil
}

func init() {
	rootCmd.AddCommand(switchCmd)
}
