package tracker

import (
	"fmt"
	"time"

	"github.com/fakeyudi/hat/internal/timecalc"
)

// Action identifies what a successful mutating operation did.
type Action string

const (
	ActionCreated  Action = "created"
	ActionDeleted  Action = "deleted"
	ActionSwitched Action = "switched"
	ActionStarted  Action = "started"
	ActionStopped  Action = "stopped"
	ActionEdited   Action = "edited"
	ActionUndone   Action = "undone"
)

// Result describes the outcome of a mutating operation for display.
type Result struct {
	Action      Action
	Project     string
	Duration    time.Duration // logged, edited-to, or cancelled duration
	Previous    time.Duration // edit/undo-of-edit: the value replaced
	Description string
	Entries     int      // undo of delete: entries restored
	Undone      UndoKind // set when Action is ActionUndone
	Unchanged   bool     // switch to the project already active
}

// Styler decorates the variable parts of a message. Nil fields leave the
// text as is.
type Styler struct {
	Project     func(string) string
	Duration    func(string) string
	Description func(string) string
}

func apply(fn func(string) string, s string) string {
	if fn == nil {
		return s
	}
	return fn(s)
}

func (r Result) String() string { return r.Render(Styler{}) }

// Render formats the message with the variable parts passed through s.
func (r Result) Render(s Styler) string {
	project := apply(s.Project, r.Project)
	dur := func(d time.Duration) string { return apply(s.Duration, timecalc.FormatDuration(d)) }

	switch r.Action {
	case ActionCreated:
		return fmt.Sprintf("Added project %s.", project)
	case ActionDeleted:
		return fmt.Sprintf("Removed project %s.", project)
	case ActionSwitched:
		if r.Unchanged {
			return fmt.Sprintf("Project %s is already selected.", project)
		}
		return fmt.Sprintf("Selected project %s.", project)
	case ActionStarted:
		return fmt.Sprintf("Now tracking time for project %s.", project)
	case ActionStopped:
		return fmt.Sprintf("Logged %s for project %s.", dur(r.Duration), project)
	case ActionEdited:
		return fmt.Sprintf("Modified the last entry from %s to %s.", dur(r.Previous), dur(r.Duration))
	case ActionUndone:
		switch r.Undone {
		case UndoStarted:
			return fmt.Sprintf("Cancelled %s of unlogged time for project %s.", dur(r.Duration), project)
		case UndoStopped:
			return fmt.Sprintf("Removed the last entry with duration %s: %s. Tracking resumed for project %s.",
				dur(r.Duration), apply(s.Description, r.Description), project)
		case UndoEdited:
			return fmt.Sprintf("Restored the last entry of project %s from %s to %s.",
				project, dur(r.Previous), dur(r.Duration))
		case UndoCreated:
			return fmt.Sprintf("Removed project %s.", project)
		case UndoDeleted:
			return fmt.Sprintf("Restored project %s with %d entries.", project, r.Entries)
		}
		return "Undone."
	}
	return string(r.Action)
}

// TimerStatus describes a running timer at the moment a report was built.
type TimerStatus struct {
	Project string
	Start   time.Time
	Elapsed time.Duration
	Now     time.Time
}

// ProjectSummary is one line of the list report.
type ProjectSummary struct {
	Name    string
	Total   time.Duration
	Entries int
	Active  bool
}

// ListReport enumerates every project with its recorded total.
type ListReport struct {
	Projects []ProjectSummary
	Active   string
	Timer    *TimerStatus
}

// TimeReport details the active project's entries.
type TimeReport struct {
	Project string
	Total   time.Duration
	Entries []TimeEntry
	Timer   *TimerStatus
}

// Overview is everything the dashboard shows in one consistent snapshot.
type Overview struct {
	List        ListReport
	Time        *TimeReport // nil without an active project
	PendingUndo UndoKind    // "" when there is nothing to undo
	UndoProject string
}
