package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fakeyudi/hat/internal/timecalc"
	"github.com/fakeyudi/hat/internal/tracker"
)

// MarkdownRenderer renders reports as Markdown tables, suitable for pasting
// into a timesheet or an issue.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) RenderList(w io.Writer, rep tracker.ListReport) error {
	var sb strings.Builder
	sb.WriteString("## Projects\n\n")
	if len(rep.Projects) == 0 {
		sb.WriteString("_No projects._\n")
	} else {
		sb.WriteString("| Project | Entries | Total |\n")
		sb.WriteString("|---------|---------|-------|\n")
		for _, p := range rep.Projects {
			name := escapeCell(p.Name)
			if p.Active {
				name = "**" + name + "**"
			}
			fmt.Fprintf(&sb, "| %s | %d | %s |\n", name, p.Entries, timecalc.FormatDuration(p.Total))
		}
	}
	writeMarkdownTimer(&sb, rep.Timer)
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *MarkdownRenderer) RenderTime(w io.Writer, rep tracker.TimeReport) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", rep.Project)
	if len(rep.Entries) == 0 {
		sb.WriteString("_No entries._\n")
	} else {
		sb.WriteString("| # | Duration | Description |\n")
		sb.WriteString("|---|----------|-------------|\n")
		for i, e := range rep.Entries {
			fmt.Fprintf(&sb, "| %d | %s | %s |\n", i+1, timecalc.FormatDuration(e.Duration), escapeCell(e.Description))
		}
	}
	fmt.Fprintf(&sb, "\n**Total:** %s\n", timecalc.FormatDuration(rep.Total))
	writeMarkdownTimer(&sb, rep.Timer)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMarkdownTimer(sb *strings.Builder, t *tracker.TimerStatus) {
	if t == nil {
		return
	}
	fmt.Fprintf(sb, "\n_Tracking %s for %s since %s._\n",
		t.Project, timecalc.FormatDuration(t.Elapsed), t.Start.Format("2006-01-02 15:04:05 MST"))
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
