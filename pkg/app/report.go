package app

import (
	"fmt"
	"sort"
	"time"

	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/timeutil"
	"tableflip.dev/roadmap/pkg/viewport"
)

// ReportItem is a project active in the report window with its events that
// fall inside the window.
type ReportItem struct {
	Project model.Project
	Events  []model.Event
}

// ReportSection groups report items by status.
type ReportSection struct {
	Status string
	Label  string
	Items  []ReportItem
}

// ReportResult is the set of work overlapping [Since, Until].
type ReportResult struct {
	Since      time.Time
	Until      time.Time
	Sections   []ReportSection
	Standalone []model.Event
	Total      int
}

// Report returns projects overlapping the window grouped by status in status
// order, followed by unknown statuses in first-seen order.
func (s *Service) Report(since, until time.Time) ReportResult {
	since, until = timeutil.Midnight(since), timeutil.Midnight(until)
	if since.After(until) {
		since, until = until, since
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	inWindow := func(start time.Time, end *model.Day) bool {
		last := start
		if end != nil && !end.IsZero() {
			last = end.Time
		}
		return !last.Before(since) && !start.After(until)
	}

	grouped := make(map[string][]ReportItem)
	var order []string
	total := 0
	for _, p := range s.state.Projects {
		end := p.End
		if !inWindow(p.Start.Time, &end) {
			continue
		}
		item := ReportItem{Project: p}
		for _, e := range s.state.EventsFor(p.ID) {
			if inWindow(e.Start.Time, e.End) {
				item.Events = append(item.Events, e.Clone())
			}
		}
		if _, ok := grouped[p.Status]; !ok {
			order = append(order, p.Status)
		}
		grouped[p.Status] = append(grouped[p.Status], item)
		total++
	}

	rank := func(id string) int {
		if i := s.state.StatusIndex(id); i >= 0 {
			return i
		}
		return len(s.state.Statuses)
	}
	sort.SliceStable(order, func(i, j int) bool { return rank(order[i]) < rank(order[j]) })

	res := ReportResult{Since: since, Until: until, Total: total}
	for _, id := range order {
		label := s.state.StatusName(id)
		if s.state.StatusIndex(id) < 0 {
			label = s.state.Labels.Get(model.LabelUnknownStatus)
		}
		res.Sections = append(res.Sections, ReportSection{Status: id, Label: label, Items: grouped[id]})
	}
	for _, e := range s.state.StandaloneEvents() {
		if inWindow(e.Start.Time, e.End) {
			res.Standalone = append(res.Standalone, e.Clone())
		}
	}
	return res
}

// Summary is a count of what the store holds.
type Summary struct {
	Range      model.TimelineRange
	Projects   int
	Events     int
	Standalone int
	ByStatus   map[string]int
	ByArea     map[string]int
	Leads      int
	UndoDepth  int
	Dirty      bool
}

// Summary counts projects and events.
func (s *Service) Summary() Summary {
	leads := len(s.Leads())
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := Summary{
		Range:      s.state.Range,
		Projects:   len(s.state.Projects),
		Events:     len(s.state.Events),
		Standalone: len(s.state.StandaloneEvents()),
		ByStatus:   make(map[string]int),
		ByArea:     make(map[string]int),
		Leads:      leads,
		UndoDepth:  len(s.undo),
		Dirty:      s.dirty,
	}
	other := s.state.Labels.Get(model.LabelOtherArea)
	for _, p := range s.state.Projects {
		sum.ByStatus[s.state.StatusName(p.Status)]++
		if name, ok := s.state.AreaName(p.Color); ok {
			sum.ByArea[name]++
		} else {
			sum.ByArea[other]++
		}
	}
	return sum
}

// FocusEvent centres v on the start of event id.
func (s *Service) FocusEvent(v *viewport.Viewport, id string) error {
	s.mu.Lock()
	i := s.state.EventByID(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: event %q", ErrNotFound, id)
	}
	start := s.state.Events[i].Start.Time
	s.mu.Unlock()
	v.ScrollToDate(start)
	return nil
}
