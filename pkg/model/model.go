// Package model defines the roadmap records: projects, events, areas and
// statuses, the timeline range, and the persisted snapshot document.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/roadmap/pkg/timeutil"
)

// DateType records how a date was entered and how it should be displayed.
type DateType string

const (
	DateTypeDate  DateType = "date"
	DateTypeWeek  DateType = "week"
	DateTypeMonth DateType = "month"
)

// ParseDateType maps user input onto a DateType. Empty input means a plain date.
func ParseDateType(s string) (DateType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "date", "day", "d":
		return DateTypeDate, nil
	case "week", "w":
		return DateTypeWeek, nil
	case "month", "m":
		return DateTypeMonth, nil
	default:
		return "", fmt.Errorf("model: unknown date type %q", s)
	}
}

// OrDefault returns DateTypeDate for an unset type.
func (t DateType) OrDefault() DateType {
	if t == "" {
		return DateTypeDate
	}
	return t
}

// Project is a date-ranged bar on the timeline.
type Project struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Lead      string   `json:"lead,omitempty" yaml:"lead,omitempty"`
	Status    string   `json:"status,omitempty" yaml:"status,omitempty"`
	Start     Day      `json:"start" yaml:"start"`
	StartType DateType `json:"startType,omitempty" yaml:"startType,omitempty"`
	End       Day      `json:"end" yaml:"end"`
	EndType   DateType `json:"endType,omitempty" yaml:"endType,omitempty"`
	Color     string   `json:"color,omitempty" yaml:"color,omitempty"`
	Comment   string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Event is a point or duration marker, optionally attached to a project.
type Event struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Start     Day      `json:"start" yaml:"start"`
	StartType DateType `json:"startType,omitempty" yaml:"startType,omitempty"`
	End       *Day     `json:"end,omitempty" yaml:"end,omitempty"`
	EndType   DateType `json:"endType,omitempty" yaml:"endType,omitempty"`
	ProjectID string   `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	Symbol    string   `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Comment   string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Standalone reports whether the event is not attached to a project.
func (e Event) Standalone() bool {
	return e.ProjectID == ""
}

// HasDuration reports whether the event spans a range rather than a point.
func (e Event) HasDuration() bool {
	return e.End != nil && !e.End.IsZero()
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	if e.End != nil {
		end := *e.End
		e.End = &end
	}
	return e
}

// UnmarshalJSON accepts the legacy single-date form ({"date", "dateType"})
// alongside start/startType.
func (e *Event) UnmarshalJSON(b []byte) error {
	type plain Event
	aux := struct {
		*plain
		Date     string   `json:"date,omitempty"`
		DateType DateType `json:"dateType,omitempty"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if e.Start.IsZero() && aux.Date != "" {
		d, err := ParseDay(aux.Date)
		if err != nil {
			return fmt.Errorf("model: invalid event date %q: %w", aux.Date, err)
		}
		e.Start = d
	}
	if e.StartType == "" {
		e.StartType = aux.DateType
	}
	if e.End != nil && e.End.IsZero() {
		e.End = nil
	}
	return nil
}

// Area is a colour-coded category. Projects reference an area by colour.
type Area struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Status is one stage in the ordered status list.
type Status struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// TimelineRange bounds the chart by whole years.
type TimelineRange struct {
	StartYear int `json:"startYear" yaml:"startYear"`
	EndYear   int `json:"endYear" yaml:"endYear"`
}

// DefaultRange spans three years back to four years forward from now.
func DefaultRange(now time.Time) TimelineRange {
	return TimelineRange{StartYear: now.Year() - 3, EndYear: now.Year() + 4}
}

// Validate rejects ranges whose end year does not follow the start year.
func (r TimelineRange) Validate() error {
	if r.StartYear <= 0 || r.EndYear <= 0 {
		return fmt.Errorf("model: range years must be positive, got %d..%d", r.StartYear, r.EndYear)
	}
	if r.StartYear >= r.EndYear {
		return fmt.Errorf("model: range end year %d must follow start year %d", r.EndYear, r.StartYear)
	}
	return nil
}

// Bounds returns the half-open range [Jan 1 StartYear, Jan 1 EndYear+1).
func (r TimelineRange) Bounds() (time.Time, time.Time) {
	return timeutil.Date(r.StartYear, time.January, 1), timeutil.Date(r.EndYear+1, time.January, 1)
}

// Contains reports whether t falls within the range.
func (r TimelineRange) Contains(t time.Time) bool {
	start, end := r.Bounds()
	return !t.Before(start) && t.Before(end)
}

// CloneProjects copies the slice.
func CloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	copy(out, in)
	return out
}

// CloneEvents deep copies the slice.
func CloneEvents(in []Event) []Event {
	if in == nil {
		return nil
	}
	out := make([]Event, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
