package tracker

import "time"

// TimeEntry is one recorded interval of work. Durations are whole seconds.
type TimeEntry struct {
	ID          string
	Duration    time.Duration
	Description string
}

// Project is a named hat and the entries logged against it, oldest first.
type Project struct {
	Name    string
	Entries []TimeEntry
}

// Total sums the recorded durations. time.Duration is an integer count of
// nanoseconds, so the sum is exact regardless of order.
func (p Project) Total() time.Duration {
	var total time.Duration
	for _, e := range p.Entries {
		total += e.Duration
	}
	return total
}

// clone returns a deep copy so a snapshot never aliases live entries.
func (p Project) clone() Project {
	entries := make([]TimeEntry, len(p.Entries))
	copy(entries, p.Entries)
	return Project{Name: p.Name, Entries: entries}
}

// last returns a pointer to the most recent entry, or nil.
func (p *Project) last() *TimeEntry {
	if len(p.Entries) == 0 {
		return nil
	}
	return &p.Entries[len(p.Entries)-1]
}
