package app

import (
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/model"
)

// Export snapshots the whole state.
func (s *Service) Export() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Document(s.opts.Now())
}

// ImportMode selects how an imported document combines with the live state.
type ImportMode int

const (
	// ImportReplace swaps in the document's projects and events, and its
	// areas, statuses, range and labels where present.
	ImportReplace ImportMode = iota
	// ImportMerge appends the document's projects and events under fresh ids
	// and adds only areas whose colour is new.
	ImportMerge
)

// ImportSummary counts what an import added.
type ImportSummary struct {
	Projects int
	Events   int
	Areas    int
}

// Import applies doc. The previous projects and events are pushed to the undo
// stack first.
func (s *Service) Import(doc model.Document, mode ImportMode) (ImportSummary, error) {
	var sum ImportSummary
	projects := model.CloneProjects(doc.Projects)
	events := model.CloneEvents(doc.Events)
	for _, p := range projects {
		if !p.End.IsZero() && p.End.Before(p.Start.Time) {
			return sum, fmt.Errorf("%w: project %q", ErrEndBeforeStart, p.Name)
		}
	}
	for _, e := range events {
		if e.HasDuration() && e.End.Before(e.Start.Time) {
			return sum, fmt.Errorf("%w: event %q", ErrEndBeforeStart, e.Name)
		}
	}
	if doc.TimelineRange != nil {
		if err := doc.TimelineRange.Validate(); err != nil {
			return sum, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushUndo()

	switch mode {
	case ImportMerge:
		known := make(map[string]struct{}, len(s.state.Areas))
		for _, a := range s.state.Areas {
			known[a.Color] = struct{}{}
		}
		for _, a := range doc.Areas {
			if _, ok := known[a.Color]; ok {
				continue
			}
			known[a.Color] = struct{}{}
			s.state.Areas = append(s.state.Areas, a)
			sum.Areas++
		}
		ids := make(map[string]string, len(projects))
		for i := range projects {
			id := s.opts.NewID()
			ids[projects[i].ID] = id
			projects[i].ID = id
		}
		for i := range events {
			events[i].ID = s.opts.NewID()
			if ref := events[i].ProjectID; ref != "" {
				if id, ok := ids[ref]; ok {
					events[i].ProjectID = id
				} else if s.state.ProjectByID(ref) < 0 {
					events[i].ProjectID = ""
				}
			}
		}
		s.state.Projects = append(s.state.Projects, projects...)
		s.state.Events = append(s.state.Events, events...)
	default:
		s.state.Projects = projects
		s.state.Events = events
		if len(doc.Areas) > 0 {
			s.state.Areas = append([]model.Area(nil), doc.Areas...)
			sum.Areas = len(doc.Areas)
		}
		if len(doc.Statuses) > 0 {
			s.state.Statuses = append([]model.Status(nil), doc.Statuses...)
		}
		if doc.TimelineRange != nil {
			s.state.Range = *doc.TimelineRange
		}
		if len(doc.Labels) > 0 {
			s.state.Labels = s.state.Labels.Merge(doc.Labels)
		}
	}
	sum.Projects = len(projects)
	sum.Events = len(events)
	s.changed()
	s.log.Info("snapshot imported",
		zap.Int("projects", sum.Projects),
		zap.Int("events", sum.Events),
		zap.Int("areas", sum.Areas),
		zap.Bool("merge", mode == ImportMerge),
	)
	return sum, nil
}
