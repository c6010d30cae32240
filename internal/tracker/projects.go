package tracker

import "sort"

// ProjectStore owns the projects and the active-project pointer (the
// current hat). An empty active name means no hat is selected.
type ProjectStore struct {
	projects map[string]*Project
	active   string
}

// NewProjectStore returns an empty store with no active project.
func NewProjectStore() ProjectStore {
	return ProjectStore{projects: make(map[string]*Project)}
}

// Create inserts an empty project and makes it active. It returns the
// previously active project name ("" if none).
func (s *ProjectStore) Create(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidProjectName
	}
	if _, ok := s.projects[name]; ok {
		return "", ErrDuplicateProject
	}
	prev := s.active
	s.projects[name] = &Project{Name: name, Entries: []TimeEntry{}}
	s.active = name
	return prev, nil
}

// Delete removes a project and returns a snapshot of it along with whether
// it was the active one. The active pointer is cleared in that case.
func (s *ProjectStore) Delete(name string) (Project, bool, error) {
	p, ok := s.projects[name]
	if !ok {
		return Project{}, false, ErrUnknownProject
	}
	snapshot := p.clone()
	delete(s.projects, name)
	wasActive := s.active == name
	if wasActive {
		s.active = ""
	}
	return snapshot, wasActive, nil
}

// Switch makes name the active project. It refuses while the timer runs on
// a different project; switching to the project already active is a no-op.
// It returns the previously active project name.
func (s *ProjectStore) Switch(name string, timer Timer) (string, error) {
	if _, ok := s.projects[name]; !ok {
		return "", ErrUnknownProject
	}
	if timer.Running() && timer.Project() != name {
		return "", ErrTimerRunning
	}
	prev := s.active
	s.active = name
	return prev, nil
}

// Active returns the active project name or ErrNoActiveProject.
func (s *ProjectStore) Active() (string, error) {
	if s.active == "" {
		return "", ErrNoActiveProject
	}
	return s.active, nil
}

// Get returns the named project.
func (s *ProjectStore) Get(name string) (*Project, bool) {
	p, ok := s.projects[name]
	return p, ok
}

// Names returns all project names in lexical order.
func (s *ProjectStore) Names() []string {
	names := make([]string, 0, len(s.projects))
	for name := range s.projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of projects.
func (s *ProjectStore) Len() int { return len(s.projects) }

// restore re-inserts a project snapshot (undo of a delete).
func (s *ProjectStore) restore(p Project) {
	cp := p.clone()
	s.projects[p.Name] = &cp
}

// remove drops a project without any checks (undo of a create).
func (s *ProjectStore) remove(name string) {
	delete(s.projects, name)
	if s.active == name {
		s.active = ""
	}
}

func (s *ProjectStore) setActive(name string) {
	s.active = name
}

func (s ProjectStore) clone() ProjectStore {
	out := ProjectStore{projects: make(map[string]*Project, len(s.projects)), active: s.active}
	for name, p := range s.projects {
		cp := p.clone()
		out.projects[name] = &cp
	}
	return out
}
