package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/hat/internal/clock"
	"github.com/fakeyudi/hat/internal/config"
	"github.com/fakeyudi/hat/internal/report"
	"github.com/fakeyudi/hat/internal/statefile"
	"github.com/fakeyudi/hat/internal/tracker"
	"github.com/fakeyudi/hat/internal/ui"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

var (
	store  *statefile.File
	engine *tracker.Engine
	clk    clock.Clock = clock.Real()
)

// Persistent flags.
var (
	stateFile string
	verbose   bool
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   "hat [project]",
	Short: "Track the time you spend wearing each hat",
	Long: `hat keeps a log of the time you spend on each project.

Select a project (your current hat) with "hat <name>", start the timer with
"hat on" and log the interval with "hat off <description>". Running hat with
no arguments lists your projects and the entries of the current hat.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runSwitch(cmd, args[0])
		}
		return printOverview(cmd.OutOrStdout(), cfg.DefaultFormat)
	},
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded
	if colorMode != "" {
		cfg.Color = colorMode
	}
	if err := ui.Configure(cfg.Color, term.IsTerminal(os.Stdout.Fd())); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, verbose)
	slog.SetDefault(logger)

	path, err := statePath()
	if err != nil {
		return err
	}
	logger.Debug("using state file", "path", path)
	store = statefile.New(path)
	engine = tracker.NewEngine(store, clk, logger)
	return nil
}

// statePath resolves the state file: --file, then HAT_FILE, then the
// state_path config key, then the XDG data directory.
func statePath() (string, error) {
	for _, p := range []string{stateFile, os.Getenv("HAT_FILE"), cfg.StatePath} {
		if p != "" {
			return expandHome(p), nil
		}
	}
	return statefile.DefaultPath()
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return home + p[1:]
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// printOverview writes the list report and, when a hat is selected, the
// time report of the current hat.
func printOverview(w io.Writer, format string) error {
	r, err := report.New(format)
	if err != nil {
		return err
	}
	ov, err := engine.Overview()
	if err != nil {
		return err
	}
	if err := r.RenderList(w, ov.List); err != nil {
		return err
	}
	if ov.Time == nil {
		return nil
	}
	if format != "json" {
		fmt.Fprintln(w)
	}
	return r.RenderTime(w, *ov.Time)
}

func printResult(cmd *cobra.Command, res tracker.Result) {
	fmt.Fprintln(cmd.OutOrStdout(), ui.Message(res))
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), ui.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&stateFile, "file", "f", "", "state file (default $XDG_DATA_HOME/hat/state.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "colorize output: auto, always or never")
}
