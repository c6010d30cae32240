package cmd

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/hat/internal/tui"
)

var plainOutput bool

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open a live dashboard of your hats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if plainOutput || !term.IsTerminal(os.Stdout.Fd()) {
			return printOverview(cmd.OutOrStdout(), "text")
		}
		return tui.Run(engine, store.Path())
	},
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "plain text output instead of TUI")
	rootCmd.AddCommand(viewCmd)
}
