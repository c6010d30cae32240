package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/hat/internal/report"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your projects with the time logged on each",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := report.New(formatOrDefault(listFormat))
		if err != nil {
			return err
		}
		rep, err := engine.List()
		if err != nil {
			return err
		}
		return r.RenderList(cmd.OutOrStdout(), rep)
	},
}

// formatOrDefault falls back to the default_format config key.
func formatOrDefault(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.DefaultFormat
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "", "output format: text, json or markdown")
	rootCmd.AddCommand(listCmd)
}
