package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/glyph"
	"tableflip.dev/roadmap/pkg/model"
)

// Project returns the project with id.
func (s *Service) Project(id string) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.ProjectByID(id)
	if i < 0 {
		return model.Project{}, fmt.Errorf("%w: project %q", ErrNotFound, id)
	}
	return s.state.Projects[i], nil
}

// AddProject validates p, assigns it a fresh id and stores it.
func (s *Service) AddProject(p model.Project) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.normalizeProject(&p); err != nil {
		return model.Project{}, err
	}
	p.ID = s.opts.NewID()
	s.pushUndo()
	s.state.Projects = append(s.state.Projects, p)
	s.changed()
	s.log.Info("project added", zap.String("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// UpdateProject replaces the stored project with the same id.
func (s *Service) UpdateProject(p model.Project) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.ProjectByID(p.ID)
	if i < 0 {
		return model.Project{}, fmt.Errorf("%w: project %q", ErrNotFound, p.ID)
	}
	if err := s.normalizeProject(&p); err != nil {
		return model.Project{}, err
	}
	s.pushUndo()
	s.state.Projects[i] = p
	s.changed()
	s.log.Info("project updated", zap.String("id", p.ID))
	return p, nil
}

// DeleteProject removes a project. Its events stay, detached.
func (s *Service) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.ProjectByID(id)
	if i < 0 {
		return fmt.Errorf("%w: project %q", ErrNotFound, id)
	}
	s.pushUndo()
	s.state.Projects = append(s.state.Projects[:i:i], s.state.Projects[i+1:]...)
	detached := 0
	for j := range s.state.Events {
		if s.state.Events[j].ProjectID == id {
			s.state.Events[j].ProjectID = ""
			detached++
		}
	}
	s.changed()
	s.log.Info("project deleted", zap.String("id", id), zap.Int("detached", detached))
	return nil
}

func (s *Service) normalizeProject(p *model.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Lead = strings.TrimSpace(p.Lead)
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("app: project %q needs start and end dates", p.Name)
	}
	if p.End.Before(p.Start.Time) {
		return fmt.Errorf("%w: %s < %s", ErrEndBeforeStart, p.End, p.Start)
	}
	p.StartType = p.StartType.OrDefault()
	p.EndType = p.EndType.OrDefault()
	if p.Status == "" && len(s.state.Statuses) > 0 {
		p.Status = s.state.Statuses[0].ID
	}
	if p.Color == "" && len(s.state.Areas) > 0 {
		p.Color = s.state.Areas[0].Color
	}
	if p.Color != "" {
		c, err := normalizeColor(p.Color)
		if err != nil {
			return err
		}
		p.Color = c
	}
	return nil
}

// Event returns the event with id.
func (s *Service) Event(id string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.EventByID(id)
	if i < 0 {
		return model.Event{}, fmt.Errorf("%w: event %q", ErrNotFound, id)
	}
	return s.state.Events[i].Clone(), nil
}

// Events lists events in stored order. A nil projectID lists all of them; an
// empty one lists standalone events.
func (s *Service) Events(projectID *string) []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if projectID == nil {
		return model.CloneEvents(s.state.Events)
	}
	return model.CloneEvents(s.state.EventsFor(*projectID))
}

// AddEvent validates e, assigns it a fresh id and stores it.
func (s *Service) AddEvent(e model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.normalizeEvent(&e); err != nil {
		return model.Event{}, err
	}
	e.ID = s.opts.NewID()
	s.pushUndo()
	s.state.Events = append(s.state.Events, e)
	s.changed()
	s.log.Info("event added", zap.String("id", e.ID), zap.String("project", e.ProjectID))
	return e.Clone(), nil
}

// UpdateEvent replaces the stored event with the same id.
func (s *Service) UpdateEvent(e model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.EventByID(e.ID)
	if i < 0 {
		return model.Event{}, fmt.Errorf("%w: event %q", ErrNotFound, e.ID)
	}
	if err := s.normalizeEvent(&e); err != nil {
		return model.Event{}, err
	}
	s.pushUndo()
	s.state.Events[i] = e
	s.changed()
	s.log.Info("event updated", zap.String("id", e.ID))
	return e.Clone(), nil
}

// DeleteEvent removes an event.
func (s *Service) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.EventByID(id)
	if i < 0 {
		return fmt.Errorf("%w: event %q", ErrNotFound, id)
	}
	s.pushUndo()
	s.state.Events = append(s.state.Events[:i:i], s.state.Events[i+1:]...)
	s.changed()
	s.log.Info("event deleted", zap.String("id", id))
	return nil
}

func (s *Service) normalizeEvent(e *model.Event) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return ErrNameRequired
	}
	if e.Start.IsZero() {
		return fmt.Errorf("app: event %q needs a start date", e.Name)
	}
	*e = e.Clone()
	if e.End != nil && e.End.IsZero() {
		e.End = nil
	}
	if e.End != nil && e.End.Before(e.Start.Time) {
		return fmt.Errorf("%w: %s < %s", ErrEndBeforeStart, e.End, e.Start)
	}
	e.StartType = e.StartType.OrDefault()
	if e.End != nil {
		e.EndType = e.EndType.OrDefault()
	} else {
		e.EndType = ""
	}
	if e.ProjectID != "" && s.state.ProjectByID(e.ProjectID) < 0 {
		return fmt.Errorf("%w: project %q", ErrNotFound, e.ProjectID)
	}
	if e.Symbol != "" {
		g, err := glyph.Lookup(e.Symbol)
		if err != nil {
			return err
		}
		e.Symbol = g.Key
		if g.Key == glyph.Default {
			e.Symbol = ""
		}
	}
	return nil
}
