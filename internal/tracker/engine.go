package tracker

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fakeyudi/hat/internal/clock"
	"github.com/fakeyudi/hat/internal/timecalc"
)

// Store loads and saves the persisted state. Implementations must make
// Save atomic: a reader sees either the old or the new state, never a mix.
type Store interface {
	Load() (PersistedState, error)
	Save(PersistedState) error
}

// Engine applies commands to the persisted state. Each mutating operation
// loads the state, works on a copy, and saves only if the operation
// succeeded.
type Engine struct {
	store  Store
	clock  clock.Clock
	logger *slog.Logger
	newID  func() string
}

// Option customises an Engine.
type Option func(*Engine)

// WithIDGenerator replaces the entry ID generator (uuid by default).
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine returns an Engine over store. A nil logger discards output.
func NewEngine(store Store, clk clock.Clock, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{
		store:  store,
		clock:  clk,
		logger: logger,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// now is truncated to whole seconds, the precision of the state file.
func (e *Engine) now() time.Time {
	return e.clock.Now().UTC().Truncate(time.Second)
}

func (e *Engine) load(op string) (*State, error) {
	ps, err := e.store.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: loading state: %w", op, err)
	}
	st, err := FromPersisted(ps)
	if err != nil {
		return nil, opErr(op, "", err)
	}
	return st, nil
}

func (e *Engine) mutate(op, project string, fn func(st *State, now time.Time) (Result, error)) (Result, error) {
	st, err := e.load(op)
	if err != nil {
		return Result{}, err
	}
	work := st.Clone()
	res, err := fn(work, e.now())
	if err != nil {
		e.logger.Debug("operation rejected", "op", op, "project", project, "error", err)
		return Result{}, opErr(op, project, err)
	}
	if err := work.validate(); err != nil {
		return Result{}, opErr(op, project, err)
	}
	if err := e.store.Save(ToPersisted(work)); err != nil {
		return Result{}, fmt.Errorf("%s: saving state: %w", op, err)
	}
	var undoKind UndoKind
	if rec := work.Undo.Pending(); rec != nil {
		undoKind = rec.Kind()
	}
	e.logger.Debug("operation applied", "op", op, "project", res.Project, "undo", undoKind)
	return res, nil
}

// New creates a project and makes it the current hat.
func (e *Engine) New(name string) (Result, error) {
	return e.mutate("new", name, func(st *State, _ time.Time) (Result, error) {
		if _, exists := st.Projects.Get(name); !exists && st.Timer.Running() {
			return Result{}, ErrTimerRunning
		}
		prev, err := st.Projects.Create(name)
		if err != nil {
			return Result{}, err
		}
		st.Undo.Record(createdUndo{project: name, previousActive: prev})
		return Result{Action: ActionCreated, Project: name}, nil
	})
}

// Delete removes a project with all of its entries. It refuses while the
// timer runs on that project.
func (e *Engine) Delete(name string) (Result, error) {
	return e.mutate("delete", name, func(st *State, _ time.Time) (Result, error) {
		if st.Timer.RunningFor(name) {
			return Result{}, ErrTimerRunning
		}
		snapshot, wasActive, err := st.Projects.Delete(name)
		if err != nil {
			return Result{}, err
		}
		st.Undo.Record(deletedUndo{snapshot: snapshot, wasActive: wasActive})
		return Result{Action: ActionDeleted, Project: name, Entries: len(snapshot.Entries)}, nil
	})
}

// Switch changes the current hat. It is not recorded for undo.
func (e *Engine) Switch(name string) (Result, error) {
	return e.mutate("switch", name, func(st *State, _ time.Time) (Result, error) {
		prev, err := st.Projects.Switch(name, st.Timer)
		if err != nil {
			return Result{}, err
		}
		return Result{Action: ActionSwitched, Project: name, Unchanged: prev == name}, nil
	})
}

// On starts the timer for the current hat.
func (e *Engine) On() (Result, error) {
	return e.mutate("on", "", func(st *State, now time.Time) (Result, error) {
		active, err := st.Projects.Active()
		if err != nil {
			return Result{}, err
		}
		if err := st.Timer.Start(active, now); err != nil {
			return Result{}, err
		}
		st.Undo.Record(startedUndo{project: active, start: now})
		return Result{Action: ActionStarted, Project: active}, nil
	})
}

// Off stops the timer and logs the elapsed time with description.
func (e *Engine) Off(description string) (Result, error) {
	return e.mutate("off", "", func(st *State, now time.Time) (Result, error) {
		if !st.Timer.Running() {
			return Result{}, ErrTimerNotRunning
		}
		desc := strings.TrimSpace(description)
		if desc == "" {
			return Result{}, ErrEmptyDescription
		}
		project, start := st.Timer.Project(), st.Timer.StartedAt()
		d, err := st.Timer.Stop(now)
		if err != nil {
			return Result{}, err
		}
		p, ok := st.Projects.Get(project)
		if !ok {
			return Result{}, &StateError{Field: "timer.project", Reason: "names a project that does not exist"}
		}
		entry := TimeEntry{ID: e.newID(), Duration: d, Description: desc}
		p.Entries = append(p.Entries, entry)
		st.Undo.Record(stoppedUndo{project: project, start: start, entry: entry})
		return Result{Action: ActionStopped, Project: project, Duration: d, Description: desc}, nil
	})
}

// Edit amends the last entry of the current hat: its duration always, its
// description only when a non-blank one is given. A zero duration is a
// valid correction.
func (e *Engine) Edit(d time.Duration, description string) (Result, error) {
	return e.mutate("edit", "", func(st *State, _ time.Time) (Result, error) {
		if d < 0 {
			return Result{}, ErrInvalidDuration
		}
		active, err := st.Projects.Active()
		if err != nil {
			return Result{}, err
		}
		if st.Timer.Running() {
			return Result{}, ErrTimerRunning
		}
		p, _ := st.Projects.Get(active)
		last := p.last()
		if last == nil {
			return Result{}, ErrNoEntries
		}
		prior := *last
		last.Duration = timecalc.Seconds(d)
		if desc := strings.TrimSpace(description); desc != "" {
			last.Description = desc
		}
		st.Undo.Record(editedUndo{project: active, prior: prior})
		return Result{
			Action:      ActionEdited,
			Project:     active,
			Duration:    last.Duration,
			Previous:    prior.Duration,
			Description: last.Description,
		}, nil
	})
}

// Undo reverses the most recent recorded operation exactly once.
func (e *Engine) Undo() (Result, error) {
	return e.mutate("undo", "", func(st *State, now time.Time) (Result, error) {
		rec, err := st.Undo.Consume()
		if err != nil {
			return Result{}, err
		}
		return rec.revert(st, now)
	})
}

// List reports every project with its recorded total.
func (e *Engine) List() (ListReport, error) {
	st, err := e.load("list")
	if err != nil {
		return ListReport{}, err
	}
	return buildList(st, e.now()), nil
}

// Time reports the entries of the current hat.
func (e *Engine) Time() (TimeReport, error) {
	st, err := e.load("time")
	if err != nil {
		return TimeReport{}, err
	}
	rep, err := buildTime(st, e.now())
	if err != nil {
		return TimeReport{}, opErr("time", "", err)
	}
	return rep, nil
}

// Overview returns the list and time reports plus the pending undo, all
// taken from a single load.
func (e *Engine) Overview() (Overview, error) {
	st, err := e.load("overview")
	if err != nil {
		return Overview{}, err
	}
	now := e.now()
	ov := Overview{List: buildList(st, now)}
	if rep, err := buildTime(st, now); err == nil {
		ov.Time = &rep
	}
	if rec := st.Undo.Pending(); rec != nil {
		ov.PendingUndo = rec.Kind()
		ov.UndoProject = rec.Project()
	}
	return ov, nil
}

func buildList(st *State, now time.Time) ListReport {
	names := st.Projects.Names()
	rep := ListReport{
		Projects: make([]ProjectSummary, 0, len(names)),
		Active:   st.Projects.active,
		Timer:    timerStatus(st.Timer, now),
	}
	for _, name := range names {
		p, _ := st.Projects.Get(name)
		rep.Projects = append(rep.Projects, ProjectSummary{
			Name:    name,
			Total:   p.Total(),
			Entries: len(p.Entries),
			Active:  name == st.Projects.active,
		})
	}
	return rep
}

func buildTime(st *State, now time.Time) (TimeReport, error) {
	active, err := st.Projects.Active()
	if err != nil {
		return TimeReport{}, err
	}
	p, _ := st.Projects.Get(active)
	entries := make([]TimeEntry, len(p.Entries))
	copy(entries, p.Entries)
	return TimeReport{
		Project: active,
		Total:   p.Total(),
		Entries: entries,
		Timer:   timerStatus(st.Timer, now),
	}, nil
}

func timerStatus(t Timer, now time.Time) *TimerStatus {
	if !t.Running() {
		return nil
	}
	return &TimerStatus{
		Project: t.Project(),
		Start:   t.StartedAt(),
		Elapsed: t.Elapsed(now),
		Now:     now,
	}
}
