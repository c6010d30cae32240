package tracker

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every failed operation wraps exactly one of these.
var (
	ErrDuplicateProject    = errors.New("project already exists")
	ErrUnknownProject      = errors.New("no such project")
	ErrInvalidProjectName  = errors.New("project name must not be empty")
	ErrNoActiveProject     = errors.New("you do not currently have a project selected")
	ErrTimerAlreadyRunning = errors.New("you are already tracking your time")
	ErrTimerNotRunning     = errors.New("you have not started tracking your time")
	ErrTimerRunning        = errors.New("the timer is running")
	ErrNothingToUndo       = errors.New("nothing to undo")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrNegativeDuration    = errors.New("clock went backwards: stop time is before start time")
	ErrEmptyDescription    = errors.New("cannot log an entry with no description")
	ErrNoEntries           = errors.New("no time has been logged for this project")
	ErrCorruptState        = errors.New("corrupt state")
)

// OpError records the operation and project a failure happened on.
type OpError struct {
	Op      string // "new", "delete", "switch", "on", "off", "edit", "undo", "list", "time"
	Project string // optional
	Err     error
}

func (e *OpError) Error() string {
	if e.Project != "" {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Project, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// StateError describes which part of a persisted state broke an invariant.
type StateError struct {
	Field  string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("corrupt state: %s: %s", e.Field, e.Reason)
}

func (e *StateError) Unwrap() error {
	return ErrCorruptState
}

func opErr(op, project string, err error) error {
	return &OpError{Op: op, Project: project, Err: err}
}
