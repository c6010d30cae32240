// Package tui provides a Bubble Tea dashboard for the hats in the state file.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/hat/internal/timecalc"
	"github.com/fakeyudi/hat/internal/tracker"
	"github.com/fakeyudi/hat/internal/ui"
	"github.com/fakeyudi/hat/internal/watch"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	hatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabProjects tabID = iota
	tabEntries
	tabStatus
	tabCount
)

var tabNames = [tabCount]string{"Projects", "Entries", "Status"}

// ── Messages ────────────────────

type tickMsg time.Time

// ReloadMsg asks the dashboard to re-read the state, e.g. after another
// process saved it.
type ReloadMsg struct{}

// RefreshInterval is how often the running timer is redrawn.
const RefreshInterval = time.Second

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ── Model ────────────────────

// Source supplies dashboard snapshots. *tracker.Engine implements it.
type Source interface {
	Overview() (tracker.Overview, error)
}

// Model is the root Bubble Tea model for the dashboard.
type Model struct {
	source    Source
	path      string
	overview  tracker.Overview
	err       error
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
	newest    bool // Entries tab: newest entry first
}

// New creates a dashboard over source. path is shown in the Status tab.
func New(source Source, path string) Model {
	m := Model{source: source, path: path}
	m.refresh()
	return m
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1", "2", "3":
			m.activeTab = tabID(msg.String()[0] - '1')
			return m, nil
		case "s":
			if m.activeTab == tabEntries {
				m.newest = !m.newest
				m.rebuildViewports()
				m.viewports[tabEntries].GotoTop()
			}
			return m, nil
		case "r":
			m.refresh()
			m.rebuildViewports()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil

	case tickMsg:
		m.refresh()
		m.rebuildViewports()
		return m, tick()

	case ReloadMsg:
		m.refresh()
		m.rebuildViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	hat := "no hat"
	if m.overview.List.Active != "" {
		hat = m.overview.List.Active
	}
	title := titleStyle.Width(m.width).Render("  hat  " + hat)

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ scroll  1-3 jump  r reload  q quit"
	if m.activeTab == tabEntries {
		order := "oldest first"
		if m.newest {
			order = "newest first"
		}
		hint += "  s sort (" + order + ")"
	}
	right := ""
	if t := m.overview.List.Timer; t != nil {
		right = timecalc.FormatDurationHHMMSS(t.Elapsed)
	}
	pad := m.width - lipgloss.Width(hint) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint + strings.Repeat(" ", pad) + right)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── State management ───────────────

func (m *Model) refresh() {
	ov, err := m.source.Overview()
	if err != nil {
		m.err = err
		return
	}
	m.overview = ov
	m.err = nil
}

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

// rebuildViewports refreshes the content but keeps the scroll positions.
func (m *Model) rebuildViewports() {
	if !m.ready {
		return
	}
	for i := tabID(0); i < tabCount; i++ {
		m.viewports[i].SetContent(m.renderTab(i))
	}
}

// ── Tab renderers ─────────────────

func (m *Model) renderTab(t tabID) string {
	var body string
	switch t {
	case tabProjects:
		body = m.renderProjects()
	case tabEntries:
		body = m.renderEntries()
	case tabStatus:
		body = m.renderStatus()
	}
	if m.err != nil {
		body = "\n" + ui.Warning("  "+m.err.Error()) + "\n" + body
	}
	return body
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func (m *Model) renderProjects() string {
	list := m.overview.List
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Projects (%d)", len(list.Projects))))
	if len(list.Projects) == 0 {
		sb.WriteString(dimStyle.Render("  (none, create one with `hat new <name>`)") + "\n")
		return sb.String()
	}
	width := 0
	for _, p := range list.Projects {
		width = max(width, lipgloss.Width(p.Name))
	}
	for _, p := range list.Projects {
		marker := "   "
		name := fmt.Sprintf("%-*s", width, p.Name)
		if p.Active {
			marker = hatStyle.Render(" ▶ ")
			name = hatStyle.Render(name)
		}
		line := fmt.Sprintf("%s%s  %10s  %s", marker, name,
			timecalc.FormatDuration(p.Total), dimStyle.Render(fmt.Sprintf("%d entries", p.Entries)))
		if list.Timer != nil && list.Timer.Project == p.Name {
			line += "  " + runningStyle.Render("● +"+timecalc.FormatDuration(list.Timer.Elapsed))
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func (m *Model) renderEntries() string {
	rep := m.overview.Time
	var sb strings.Builder
	if rep == nil {
		sb.WriteString(heading("Entries"))
		sb.WriteString(dimStyle.Render("  (no hat selected)") + "\n")
		return sb.String()
	}
	sb.WriteString(heading(fmt.Sprintf("Entries for %s (%d)", rep.Project, len(rep.Entries))))
	if len(rep.Entries) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
	}
	for i := range rep.Entries {
		idx := i
		if m.newest {
			idx = len(rep.Entries) - 1 - i
		}
		e := rep.Entries[idx]
		num := dimStyle.Render(fmt.Sprintf("  %3d.", idx+1))
		sb.WriteString(fmt.Sprintf("%s  %10s  %s\n", num, timecalc.FormatDuration(e.Duration), e.Description))
	}
	sb.WriteString("\n" + labelStyle.Render("  Total:") + "  " + timecalc.FormatDuration(rep.Total) + "\n")
	return sb.String()
}

func (m *Model) renderStatus() string {
	ov := m.overview
	var sb strings.Builder
	sb.WriteString(heading("Status"))

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-14s", label)) + "  " + value + "\n")
	}
	hat := dimStyle.Render("(none)")
	if ov.List.Active != "" {
		hat = hatStyle.Render(ov.List.Active)
	}
	row("Hat:", hat)
	if t := ov.List.Timer; t != nil {
		row("Timer:", runningStyle.Render("running")+" on "+t.Project)
		row("Started:", t.Start.Local().Format("2006-01-02 15:04:05")+" ("+ui.Since(t.Start, t.Now)+")")
		row("Elapsed:", timecalc.FormatDurationHHMMSS(t.Elapsed))
	} else {
		row("Timer:", dimStyle.Render("idle"))
	}
	undo := dimStyle.Render("(nothing to undo)")
	if ov.PendingUndo != "" {
		undo = fmt.Sprintf("%s %s", ov.PendingUndo, ov.UndoProject)
	}
	row("Undo:", undo)
	if m.path != "" {
		row("State file:", m.path)
	}
	return sb.String()
}

// Run starts the dashboard and reloads it whenever the state file at path
// changes on disk.
func Run(source Source, path string) error {
	p := tea.NewProgram(New(source, path), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := watch.Watch(ctx, path, func() { p.Send(ReloadMsg{}) }); err != nil {
			slog.Debug("state file watcher stopped", "path", path, "error", err)
		}
	}()

	_, err := p.Run()
	return err
}
