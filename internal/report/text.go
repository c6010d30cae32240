package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fakeyudi/hat/internal/tracker"
	"github.com/fakeyudi/hat/internal/ui"
)

// TextRenderer renders reports for a terminal, styled through package ui.
type TextRenderer struct{}

func (r *TextRenderer) RenderList(w io.Writer, rep tracker.ListReport) error {
	var sb strings.Builder
	if len(rep.Projects) == 0 {
		sb.WriteString("No projects yet. Create one with `hat new <name>`.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	width := 0
	for _, p := range rep.Projects {
		width = max(width, utf8.RuneCountInString(p.Name))
	}

	sb.WriteString("Projects:\n")
	for _, p := range rep.Projects {
		marker := " "
		if p.Active {
			marker = "*"
		}
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(p.Name))
		fmt.Fprintf(&sb, "%s %s%s  %s (%s)\n", marker, ui.Project(p.Name), pad, ui.Duration(p.Total), plural(p.Entries, "entry", "entries"))
	}
	if rep.Timer != nil {
		writeTimer(&sb, rep.Timer)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *TextRenderer) RenderTime(w io.Writer, rep tracker.TimeReport) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project %s:\n", ui.Project(rep.Project))
	if len(rep.Entries) == 0 {
		sb.WriteString("  No entries yet.\n")
	}
	for i, e := range rep.Entries {
		fmt.Fprintf(&sb, "  %d. %s  %s\n", i+1, ui.Duration(e.Duration), ui.Description(e.Description))
	}
	fmt.Fprintf(&sb, "Total: %s\n", ui.Duration(rep.Total))
	if rep.Timer != nil {
		writeTimer(&sb, rep.Timer)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTimer(sb *strings.Builder, t *tracker.TimerStatus) {
	fmt.Fprintf(sb, "Tracking %s for %s (started %s).\n",
		ui.Project(t.Project), ui.Duration(t.Elapsed), ui.Since(t.Start, t.Now))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
