// Package ui holds the terminal styling shared by the CLI and the dashboard.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/fakeyudi/hat/internal/timecalc"
	"github.com/fakeyudi/hat/internal/tracker"
)

var (
	ProjectStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	DurationStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	SuccessStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	WarningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	DescriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Configure selects the colour profile for all styles. mode is one of
// "auto", "always" or "never"; in auto mode colour is used only when isTTY.
func Configure(mode string, isTTY bool) error {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI)
	case "auto", "":
		if isTTY {
			lipgloss.SetColorProfile(termenv.EnvColorProfile())
		} else {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	default:
		return fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
	}
	return nil
}

func Project(name string) string { return ProjectStyle.Render(name) }

func Duration(d time.Duration) string { return DurationStyle.Render(timecalc.FormatDuration(d)) }

func Description(s string) string { return DescriptionStyle.Render(s) }

func Warning(s string) string { return WarningStyle.Render(s) }

// Since renders start relative to now, e.g. "12 minutes ago".
func Since(start, now time.Time) string {
	return humanize.RelTime(start, now, "ago", "from now")
}

// Message renders the outcome of a command with the project, durations and
// description highlighted.
func Message(r tracker.Result) string {
	return r.Render(tracker.Styler{
		Project:     Project,
		Duration:    func(s string) string { return DurationStyle.Render(s) },
		Description: Description,
	})
}

// Error renders err as a warning line.
func Error(err error) string {
	return Warning("hat: " + err.Error())
}
