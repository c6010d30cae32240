package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/fakeyudi/hat/internal/tracker"
)

// JSONRenderer renders reports as indented JSON with durations in whole
// seconds, matching the state file.
type JSONRenderer struct{}

type jsonTimer struct {
	Project           string `json:"project"`
	StartEpochSeconds int64  `json:"start_epoch_seconds"`
	ElapsedSeconds    int64  `json:"elapsed_seconds"`
}

type jsonProject struct {
	Name         string `json:"name"`
	TotalSeconds int64  `json:"total_seconds"`
	Entries      int    `json:"entries"`
	Active       bool   `json:"active"`
}

type jsonList struct {
	ActiveProject *string       `json:"active_project"`
	Projects      []jsonProject `json:"projects"`
	Timer         *jsonTimer    `json:"timer"`
}

type jsonEntry struct {
	ID              string `json:"id,omitempty"`
	DurationSeconds int64  `json:"duration_seconds"`
	Description     string `json:"description"`
}

type jsonTime struct {
	Project      string      `json:"project"`
	TotalSeconds int64       `json:"total_seconds"`
	Entries      []jsonEntry `json:"entries"`
	Timer        *jsonTimer  `json:"timer"`
}

func seconds(d time.Duration) int64 { return int64(d / time.Second) }

func toJSONTimer(t *tracker.TimerStatus) *jsonTimer {
	if t == nil {
		return nil
	}
	return &jsonTimer{
		Project:           t.Project,
		StartEpochSeconds: t.Start.Unix(),
		ElapsedSeconds:    seconds(t.Elapsed),
	}
}

func (r *JSONRenderer) RenderList(w io.Writer, rep tracker.ListReport) error {
	out := jsonList{Projects: make([]jsonProject, 0, len(rep.Projects)), Timer: toJSONTimer(rep.Timer)}
	if rep.Active != "" {
		active := rep.Active
		out.ActiveProject = &active
	}
	for _, p := range rep.Projects {
		out.Projects = append(out.Projects, jsonProject{
			Name:         p.Name,
			TotalSeconds: seconds(p.Total),
			Entries:      p.Entries,
			Active:       p.Active,
		})
	}
	return encode(w, out)
}

func (r *JSONRenderer) RenderTime(w io.Writer, rep tracker.TimeReport) error {
	out := jsonTime{
		Project:      rep.Project,
		TotalSeconds: seconds(rep.Total),
		Entries:      make([]jsonEntry, 0, len(rep.Entries)),
		Timer:        toJSONTimer(rep.Timer),
	}
	for _, e := range rep.Entries {
		out.Entries = append(out.Entries, jsonEntry{
			ID:              e.ID,
			DurationSeconds: seconds(e.Duration),
			Description:     e.Description,
		})
	}
	return encode(w, out)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
