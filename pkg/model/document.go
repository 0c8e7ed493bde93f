package model

import "time"

// DocumentVersion is the snapshot format written by this package.
const DocumentVersion = 1

// Document is the full persisted/exported state.
type Document struct {
	Version       int            `json:"version" yaml:"version"`
	ExportDate    time.Time      `json:"exportDate" yaml:"exportDate"`
	TimelineRange *TimelineRange `json:"timelineRange,omitempty" yaml:"timelineRange,omitempty"`
	Areas         []Area         `json:"areas,omitempty" yaml:"areas,omitempty"`
	Statuses      []Status       `json:"statuses,omitempty" yaml:"statuses,omitempty"`
	Projects      []Project      `json:"projects" yaml:"projects"`
	Events        []Event        `json:"events" yaml:"events"`
	Labels        Labels         `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// State is the live, mutable data set.
type State struct {
	Range    TimelineRange
	Areas    []Area
	Statuses []Status
	Projects []Project
	Events   []Event
	Labels   Labels
}

// Clone deep copies the state.
func (s State) Clone() State {
	out := State{
		Range:    s.Range,
		Projects: CloneProjects(s.Projects),
		Events:   CloneEvents(s.Events),
		Labels:   s.Labels.Merge(nil),
	}
	if s.Areas != nil {
		out.Areas = append([]Area(nil), s.Areas...)
	}
	if s.Statuses != nil {
		out.Statuses = append([]Status(nil), s.Statuses...)
	}
	return out
}

// Document renders the state as a snapshot stamped with now.
func (s State) Document(now time.Time) Document {
	c := s.Clone()
	rng := c.Range
	projects, events := c.Projects, c.Events
	if projects == nil {
		projects = []Project{}
	}
	if events == nil {
		events = []Event{}
	}
	return Document{
		Version:       DocumentVersion,
		ExportDate:    now.UTC(),
		TimelineRange: &rng,
		Areas:         c.Areas,
		Statuses:      c.Statuses,
		Projects:      projects,
		Events:        events,
		Labels:        c.Labels,
	}
}

// Snapshot is one undo step: the project and event collections before a
// mutation.
type Snapshot struct {
	Projects []Project `json:"projects"`
	Events   []Event   `json:"events"`
}

// Snapshot captures the undoable part of the state.
func (s State) Snapshot() Snapshot {
	return Snapshot{Projects: CloneProjects(s.Projects), Events: CloneEvents(s.Events)}
}

// ProjectByID returns the index of the project with id, or -1.
func (s State) ProjectByID(id string) int {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

// EventByID returns the index of the event with id, or -1.
func (s State) EventByID(id string) int {
	for i := range s.Events {
		if s.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// AreaName resolves a colour to its area name.
func (s State) AreaName(color string) (string, bool) {
	for _, a := range s.Areas {
		if a.Color == color {
			return a.Name, true
		}
	}
	return "", false
}

// StatusIndex returns the position of status id in the ordered list, or -1.
func (s State) StatusIndex(id string) int {
	for i, st := range s.Statuses {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// StatusName resolves a status id to its display name.
func (s State) StatusName(id string) string {
	if i := s.StatusIndex(id); i >= 0 {
		return s.Statuses[i].Name
	}
	return id
}

// EventsFor returns the events attached to project id in stored order.
func (s State) EventsFor(projectID string) []Event {
	var out []Event
	for _, e := range s.Events {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out
}

// StandaloneEvents returns events with no project.
func (s State) StandaloneEvents() []Event {
	return s.EventsFor("")
}
