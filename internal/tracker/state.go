package tracker

// State is the in-memory form the Engine mutates. Operations run on a
// Clone and the original is discarded on failure, so a failed command can
// never leave a partially mutated state behind.
type State struct {
	Projects ProjectStore
	Timer    Timer
	Undo     UndoContext
}

// NewState returns an empty state: no projects, no hat, idle timer.
func NewState() *State {
	return &State{Projects: NewProjectStore()}
}

// Clone returns a deep copy. Undo records are immutable values and are
// shared.
func (s *State) Clone() *State {
	return &State{
		Projects: s.Projects.clone(),
		Timer:    s.Timer,
		Undo:     s.Undo,
	}
}

// validate checks the cross-component invariants.
func (s *State) validate() error {
	if s.Projects.active != "" {
		if _, ok := s.Projects.Get(s.Projects.active); !ok {
			return &StateError{Field: "active_project", Reason: "names a project that does not exist"}
		}
	}
	if s.Timer.Running() {
		if s.Projects.active == "" {
			return &StateError{Field: "timer", Reason: "running without an active project"}
		}
		if s.Timer.Project() != s.Projects.active {
			return &StateError{Field: "timer", Reason: "running on a project that is not active"}
		}
	}
	return nil
}
