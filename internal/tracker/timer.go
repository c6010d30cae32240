package tracker

import "time"

// Timer is the store-wide active timer. It is either idle or running since
// a start instant on exactly one project; the fields are never set
// independently.
type Timer struct {
	running bool
	project string
	start   time.Time
}

// Running reports whether time is being measured.
func (t Timer) Running() bool { return t.running }

// Project returns the project the timer runs on, or "" when idle.
func (t Timer) Project() string { return t.project }

// StartedAt returns the start instant, or the zero time when idle.
func (t Timer) StartedAt() time.Time { return t.start }

// RunningFor reports whether the timer is running on the named project.
func (t Timer) RunningFor(project string) bool {
	return t.running && t.project == project
}

// Elapsed returns now - start for a running timer, clamped to zero if the
// clock went backwards. It is for display only; Stop reports the anomaly.
func (t Timer) Elapsed(now time.Time) time.Duration {
	if !t.running {
		return 0
	}
	d := now.Sub(t.start)
	if d < 0 {
		return 0
	}
	return d
}

// Start transitions Idle -> Running(now) for project.
func (t *Timer) Start(project string, now time.Time) error {
	if project == "" {
		return ErrNoActiveProject
	}
	if t.running {
		return ErrTimerAlreadyRunning
	}
	*t = Timer{running: true, project: project, start: now}
	return nil
}

// Stop transitions Running -> Idle and returns the measured duration. On
// error the timer is left untouched.
func (t *Timer) Stop(now time.Time) (time.Duration, error) {
	if !t.running {
		return 0, ErrTimerNotRunning
	}
	d := now.Sub(t.start)
	if d < 0 {
		return 0, ErrNegativeDuration
	}
	*t = Timer{}
	return d, nil
}

// resume re-arms the timer with an earlier start instant (undo of a stop).
func (t *Timer) resume(project string, start time.Time) {
	*t = Timer{running: true, project: project, start: start}
}

// cancel discards a running interval without recording it.
func (t *Timer) cancel() {
	*t = Timer{}
}
