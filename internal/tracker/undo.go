package tracker

import (
	"fmt"
	"time"
)

// UndoKind names the operation a pending undo record reverses.
type UndoKind string

const (
	UndoStarted UndoKind = "started"
	UndoStopped UndoKind = "stopped"
	UndoEdited  UndoKind = "edited"
	UndoCreated UndoKind = "created"
	UndoDeleted UndoKind = "deleted"
)

// UndoRecord is the minimal snapshot needed to reverse one operation. The
// concrete types below are the only implementations.
type UndoRecord interface {
	Kind() UndoKind
	Project() string
	revert(st *State, now time.Time) (Result, error)
}

// UndoContext holds at most one pending record. Recording overwrites it.
type UndoContext struct {
	pending UndoRecord
}

// Record replaces any pending record with r.
func (u *UndoContext) Record(r UndoRecord) {
	u.pending = r
}

// Consume returns the pending record and clears the slot.
func (u *UndoContext) Consume() (UndoRecord, error) {
	if u.pending == nil {
		return nil, ErrNothingToUndo
	}
	r := u.pending
	u.pending = nil
	return r, nil
}

// Pending returns the pending record, or nil.
func (u UndoContext) Pending() UndoRecord {
	return u.pending
}

// startedUndo cancels a running timer.
type startedUndo struct {
	project string
	start   time.Time
}

func (r startedUndo) Kind() UndoKind  { return UndoStarted }
func (r startedUndo) Project() string { return r.project }

func (r startedUndo) revert(st *State, now time.Time) (Result, error) {
	if !st.Timer.RunningFor(r.project) || !st.Timer.StartedAt().Equal(r.start) {
		return Result{}, &StateError{Field: "undo", Reason: "timer no longer matches the recorded start"}
	}
	elapsed := st.Timer.Elapsed(now)
	st.Timer.cancel()
	return Result{Action: ActionUndone, Undone: UndoStarted, Project: r.project, Duration: elapsed}, nil
}

// stoppedUndo removes the entry an off appended and re-arms the timer.
type stoppedUndo struct {
	project string
	start   time.Time
	entry   TimeEntry
}

func (r stoppedUndo) Kind() UndoKind  { return UndoStopped }
func (r stoppedUndo) Project() string { return r.project }

func (r stoppedUndo) revert(st *State, _ time.Time) (Result, error) {
	p, ok := st.Projects.Get(r.project)
	if !ok {
		return Result{}, &StateError{Field: "undo", Reason: fmt.Sprintf("project %q no longer exists", r.project)}
	}
	last := p.last()
	if last == nil || last.ID != r.entry.ID {
		return Result{}, &StateError{Field: "undo", Reason: "last entry does not match the recorded one"}
	}
	if st.Timer.Running() {
		return Result{}, ErrTimerAlreadyRunning
	}
	p.Entries = p.Entries[:len(p.Entries)-1]
	st.Timer.resume(r.project, r.start)
	st.Projects.setActive(r.project)
	return Result{
		Action:      ActionUndone,
		Undone:      UndoStopped,
		Project:     r.project,
		Duration:    r.entry.Duration,
		Description: r.entry.Description,
	}, nil
}

// editedUndo restores the last entry's previous value.
type editedUndo struct {
	project string
	prior   TimeEntry
}

func (r editedUndo) Kind() UndoKind  { return UndoEdited }
func (r editedUndo) Project() string { return r.project }

func (r editedUndo) revert(st *State, _ time.Time) (Result, error) {
	p, ok := st.Projects.Get(r.project)
	if !ok {
		return Result{}, &StateError{Field: "undo", Reason: fmt.Sprintf("project %q no longer exists", r.project)}
	}
	last := p.last()
	if last == nil || last.ID != r.prior.ID {
		return Result{}, &StateError{Field: "undo", Reason: "last entry does not match the edited one"}
	}
	current := last.Duration
	*last = r.prior
	return Result{
		Action:      ActionUndone,
		Undone:      UndoEdited,
		Project:     r.project,
		Duration:    r.prior.Duration,
		Previous:    current,
		Description: r.prior.Description,
	}, nil
}

// createdUndo removes a freshly created project.
type createdUndo struct {
	project        string
	previousActive string
}

func (r createdUndo) Kind() UndoKind  { return UndoCreated }
func (r createdUndo) Project() string { return r.project }

func (r createdUndo) revert(st *State, _ time.Time) (Result, error) {
	if _, ok := st.Projects.Get(r.project); !ok {
		return Result{}, &StateError{Field: "undo", Reason: fmt.Sprintf("project %q no longer exists", r.project)}
	}
	if st.Timer.RunningFor(r.project) {
		return Result{}, ErrTimerRunning
	}
	wasActive := st.Projects.active == r.project
	st.Projects.remove(r.project)
	if wasActive {
		if _, ok := st.Projects.Get(r.previousActive); ok {
			st.Projects.setActive(r.previousActive)
		}
	}
	return Result{Action: ActionUndone, Undone: UndoCreated, Project: r.project}, nil
}

// deletedUndo re-inserts a deleted project with all its entries.
type deletedUndo struct {
	snapshot  Project
	wasActive bool
}

func (r deletedUndo) Kind() UndoKind  { return UndoDeleted }
func (r deletedUndo) Project() string { return r.snapshot.Name }

func (r deletedUndo) revert(st *State, _ time.Time) (Result, error) {
	if _, ok := st.Projects.Get(r.snapshot.Name); ok {
		return Result{}, &StateError{Field: "undo", Reason: fmt.Sprintf("project %q exists again", r.snapshot.Name)}
	}
	st.Projects.restore(r.snapshot)
	if r.wasActive && !st.Timer.Running() {
		st.Projects.setActive(r.snapshot.Name)
	}
	return Result{
		Action:  ActionUndone,
		Undone:  UndoDeleted,
		Project: r.snapshot.Name,
		Entries: len(r.snapshot.Entries),
	}, nil
}
