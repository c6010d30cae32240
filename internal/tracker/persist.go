package tracker

import (
	"fmt"
	"math"
	"time"
)

// PersistedState is the on-disk shape of the tracker state. The file
// format itself (JSON framing, location) belongs to the store.
type PersistedState struct {
	Projects      map[string]PersistedProject `json:"projects"`
	ActiveProject *string                     `json:"active_project"`
	Timer         *PersistedTimer             `json:"timer"`
	Undo          *PersistedUndo              `json:"undo,omitempty"`
}

// PersistedProject holds a project's entries, oldest first.
type PersistedProject struct {
	Entries []PersistedEntry `json:"entries"`
}

// PersistedEntry is one recorded interval.
type PersistedEntry struct {
	ID              string `json:"id,omitempty"`
	DurationSeconds uint64 `json:"duration_seconds"`
	Description     string `json:"description"`
}

// PersistedTimer is present only while the timer runs.
type PersistedTimer struct {
	Project           string `json:"project"`
	StartEpochSeconds uint64 `json:"start_epoch_seconds"`
}

// PersistedUndo is the single pending undo record. Which optional fields
// are set depends on Kind:
//
//	started: start_epoch_seconds
//	stopped: start_epoch_seconds, entry (the appended entry)
//	edited:  entry (the value before the edit)
//	created: previous_active (absent when no hat was selected)
//	deleted: removed, was_active
type PersistedUndo struct {
	Kind              UndoKind          `json:"kind"`
	Project           string            `json:"project"`
	StartEpochSeconds *uint64           `json:"start_epoch_seconds,omitempty"`
	Entry             *PersistedEntry   `json:"entry,omitempty"`
	PreviousActive    *string           `json:"previous_active,omitempty"`
	WasActive         bool              `json:"was_active,omitempty"`
	Removed           *PersistedProject `json:"removed,omitempty"`
}

// EmptyState is the state used when no file exists yet.
func EmptyState() PersistedState {
	return PersistedState{Projects: map[string]PersistedProject{}}
}

const maxDurationSeconds = uint64(math.MaxInt64 / int64(time.Second))

// FromPersisted decodes and validates a persisted state.
func FromPersisted(ps PersistedState) (*State, error) {
	st := NewState()
	for name, pp := range ps.Projects {
		if name == "" {
			return nil, &StateError{Field: "projects", Reason: "empty project name"}
		}
		entries, err := decodeEntries(pp.Entries, "projects."+name)
		if err != nil {
			return nil, err
		}
		st.Projects.projects[name] = &Project{Name: name, Entries: entries}
	}
	if ps.ActiveProject != nil {
		if *ps.ActiveProject == "" {
			return nil, &StateError{Field: "active_project", Reason: "empty project name"}
		}
		st.Projects.active = *ps.ActiveProject
	}
	if ps.Timer != nil {
		if ps.Timer.Project == "" {
			return nil, &StateError{Field: "timer.project", Reason: "empty project name"}
		}
		st.Timer.resume(ps.Timer.Project, fromEpoch(ps.Timer.StartEpochSeconds))
	}
	if err := st.validate(); err != nil {
		return nil, err
	}
	if ps.Undo != nil {
		rec, err := decodeUndo(*ps.Undo)
		if err != nil {
			return nil, err
		}
		st.Undo.Record(rec)
	}
	return st, nil
}

// ToPersisted encodes st. Slices and maps are always non-nil so that an
// encode/decode cycle compares equal field for field.
func ToPersisted(st *State) PersistedState {
	ps := PersistedState{Projects: make(map[string]PersistedProject, st.Projects.Len())}
	for name, p := range st.Projects.projects {
		ps.Projects[name] = encodeProject(*p)
	}
	if st.Projects.active != "" {
		active := st.Projects.active
		ps.ActiveProject = &active
	}
	if st.Timer.Running() {
		ps.Timer = &PersistedTimer{
			Project:           st.Timer.Project(),
			StartEpochSeconds: toEpoch(st.Timer.StartedAt()),
		}
	}
	if rec := st.Undo.Pending(); rec != nil {
		pu := encodeUndo(rec)
		ps.Undo = &pu
	}
	return ps
}

func encodeProject(p Project) PersistedProject {
	entries := make([]PersistedEntry, len(p.Entries))
	for i, e := range p.Entries {
		entries[i] = encodeEntry(e)
	}
	return PersistedProject{Entries: entries}
}

func encodeEntry(e TimeEntry) PersistedEntry {
	return PersistedEntry{
		ID:              e.ID,
		DurationSeconds: uint64(e.Duration / time.Second),
		Description:     e.Description,
	}
}

func decodeEntries(in []PersistedEntry, field string) ([]TimeEntry, error) {
	entries := make([]TimeEntry, len(in))
	for i, pe := range in {
		e, err := decodeEntry(pe, fmt.Sprintf("%s.entries[%d]", field, i))
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}

func decodeEntry(pe PersistedEntry, field string) (TimeEntry, error) {
	if pe.DurationSeconds > maxDurationSeconds {
		return TimeEntry{}, &StateError{Field: field, Reason: "duration out of range"}
	}
	return TimeEntry{
		ID:          pe.ID,
		Duration:    time.Duration(pe.DurationSeconds) * time.Second,
		Description: pe.Description,
	}, nil
}

func encodeUndo(rec UndoRecord) PersistedUndo {
	pu := PersistedUndo{Kind: rec.Kind(), Project: rec.Project()}
	switch r := rec.(type) {
	case startedUndo:
		start := toEpoch(r.start)
		pu.StartEpochSeconds = &start
	case stoppedUndo:
		start := toEpoch(r.start)
		entry := encodeEntry(r.entry)
		pu.StartEpochSeconds = &start
		pu.Entry = &entry
	case editedUndo:
		entry := encodeEntry(r.prior)
		pu.Entry = &entry
	case createdUndo:
		if r.previousActive != "" {
			prev := r.previousActive
			pu.PreviousActive = &prev
		}
	case deletedUndo:
		removed := encodeProject(r.snapshot)
		pu.Removed = &removed
		pu.WasActive = r.wasActive
	}
	return pu
}

func decodeUndo(pu PersistedUndo) (UndoRecord, error) {
	if pu.Project == "" {
		return nil, &StateError{Field: "undo.project", Reason: "empty project name"}
	}
	missing := func(field string) error {
		return &StateError{Field: "undo." + field, Reason: fmt.Sprintf("required for %q records", pu.Kind)}
	}
	switch pu.Kind {
	case UndoStarted:
		if pu.StartEpochSeconds == nil {
			return nil, missing("start_epoch_seconds")
		}
		return startedUndo{project: pu.Project, start: fromEpoch(*pu.StartEpochSeconds)}, nil
	case UndoStopped:
		if pu.StartEpochSeconds == nil {
			return nil, missing("start_epoch_seconds")
		}
		if pu.Entry == nil {
			return nil, missing("entry")
		}
		entry, err := decodeEntry(*pu.Entry, "undo.entry")
		if err != nil {
			return nil, err
		}
		return stoppedUndo{project: pu.Project, start: fromEpoch(*pu.StartEpochSeconds), entry: entry}, nil
	case UndoEdited:
		if pu.Entry == nil {
			return nil, missing("entry")
		}
		entry, err := decodeEntry(*pu.Entry, "undo.entry")
		if err != nil {
			return nil, err
		}
		return editedUndo{project: pu.Project, prior: entry}, nil
	case UndoCreated:
		rec := createdUndo{project: pu.Project}
		if pu.PreviousActive != nil {
			rec.previousActive = *pu.PreviousActive
		}
		return rec, nil
	case UndoDeleted:
		if pu.Removed == nil {
			return nil, missing("removed")
		}
		entries, err := decodeEntries(pu.Removed.Entries, "undo.removed")
		if err != nil {
			return nil, err
		}
		return deletedUndo{snapshot: Project{Name: pu.Project, Entries: entries}, wasActive: pu.WasActive}, nil
	}
	return nil, &StateError{Field: "undo.kind", Reason: fmt.Sprintf("unknown kind %q", pu.Kind)}
}

func toEpoch(t time.Time) uint64 {
	return uint64(t.Unix())
}

func fromEpoch(sec uint64) time.Time {
	return time.Unix(int64(sec), 0).UTC()
}
