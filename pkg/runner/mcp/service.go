// Package mcp exposes the roadmap over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/glyph"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/runner/render"
)

// Service adapts the roadmap service to transport friendly values. Every
// mutation is flushed before the call returns.
type Service struct {
	App *app.Service
	// Columns is the default render width in cells.
	Columns int
}

// NewService wraps a loaded roadmap service.
func NewService(a *app.Service) *Service {
	return &Service{App: a, Columns: 120}
}

// ProjectDTO is a transport-friendly projection of a project.
type ProjectDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Lead       string `json:"lead,omitempty"`
	Status     string `json:"status,omitempty"`
	StatusName string `json:"statusName,omitempty"`
	Area       string `json:"area,omitempty"`
	Color      string `json:"color,omitempty"`
	Start      string `json:"start"`
	StartType  string `json:"startType"`
	End        string `json:"end"`
	EndType    string `json:"endType"`
	Display    string `json:"display"`
	Comment    string `json:"comment,omitempty"`
	Events     int    `json:"events"`
}

// EventDTO is a transport-friendly projection of an event.
type EventDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Start     string `json:"start"`
	StartType string `json:"startType"`
	End       string `json:"end,omitempty"`
	EndType   string `json:"endType,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	Symbol    string `json:"symbol"`
	Glyph     string `json:"glyph"`
	Display   string `json:"display"`
	Comment   string `json:"comment,omitempty"`
}

// ProjectInput carries the fields of a project create or update. Nil fields
// are left alone.
type ProjectInput struct {
	Name    *string `json:"name"`
	Lead    *string `json:"lead"`
	Status  *string `json:"status"`
	Area    *string `json:"area"`
	Start   *string `json:"start"`
	End     *string `json:"end"`
	Comment *string `json:"comment"`
}

// EventInput carries the fields of an event create or update. Nil fields are
// left alone; an empty end clears the duration.
type EventInput struct {
	Name    *string `json:"name"`
	Project *string `json:"project"`
	Symbol  *string `json:"symbol"`
	Start   *string `json:"start"`
	End     *string `json:"end"`
	Comment *string `json:"comment"`
}

// RenderInput positions the viewport for a render.
type RenderInput struct {
	View    string  `json:"view"`
	Zoom    float64 `json:"zoom"`
	Columns int     `json:"columns"`
	Sort    string  `json:"sort"`
	Compact bool    `json:"compact"`
	Focus   string  `json:"focus"`
}

func (s *Service) commit() error {
	if err := s.App.Flush(); err != nil && !errors.Is(err, app.ErrNoPersistence) {
		return err
	}
	return nil
}

func (s *Service) projectDTO(p model.Project, labels model.Labels, areas []model.Area, statuses []model.Status, events []model.Event) ProjectDTO {
	dto := ProjectDTO{
		ID:        p.ID,
		Name:      p.Name,
		Lead:      p.Lead,
		Status:    p.Status,
		Color:     p.Color,
		Start:     p.Start.String(),
		StartType: string(p.StartType.OrDefault()),
		End:       p.End.String(),
		EndType:   string(p.EndType.OrDefault()),
		Display:   labels.ProjectRange(p),
		Comment:   p.Comment,
	}
	for _, st := range statuses {
		if st.ID == p.Status {
			dto.StatusName = st.Name
		}
	}
	for _, a := range areas {
		if strings.EqualFold(a.Color, p.Color) {
			dto.Area = a.Name
		}
	}
	for _, e := range events {
		if e.ProjectID == p.ID {
			dto.Events++
		}
	}
	return dto
}

func eventDTO(e model.Event, labels model.Labels) EventDTO {
	g := glyph.ForKey(e.Symbol)
	dto := EventDTO{
		ID:        e.ID,
		Name:      e.Name,
		Start:     e.Start.String(),
		StartType: string(e.StartType.OrDefault()),
		ProjectID: e.ProjectID,
		Symbol:    g.Key,
		Glyph:     g.Symbol,
		Display:   labels.EventRange(e),
		Comment:   e.Comment,
	}
	if e.HasDuration() {
		dto.End = e.End.String()
		dto.EndType = string(e.EndType.OrDefault())
	}
	return dto
}

// ListProjects returns the projects matching q.
func (s *Service) ListProjects(ctx context.Context, q app.Query) []ProjectDTO {
	labels, areas, statuses := s.App.Labels(), s.App.Areas(), s.App.Statuses()
	events := s.App.Events(nil)
	out := []ProjectDTO{}
	for _, p := range s.App.Projects(q) {
		out = append(out, s.projectDTO(p, labels, areas, statuses, events))
	}
	return out
}

// ProjectByID returns one project and its events.
func (s *Service) ProjectByID(ctx context.Context, id string) (*ProjectDTO, []EventDTO, error) {
	p, err := s.App.Project(id)
	if err != nil {
		return nil, nil, err
	}
	labels := s.App.Labels()
	events := s.App.Events(&p.ID)
	dto := s.projectDTO(p, labels, s.App.Areas(), s.App.Statuses(), events)
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, eventDTO(e, labels))
	}
	return &dto, out, nil
}

func (s *Service) applyProject(p *model.Project, in ProjectInput) error {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Lead != nil {
		p.Lead = strings.TrimSpace(*in.Lead)
	}
	if in.Status != nil {
		p.Status = strings.TrimSpace(*in.Status)
	}
	if in.Comment != nil {
		p.Comment = *in.Comment
	}
	if in.Area != nil {
		p.Color = ""
		if a := strings.TrimSpace(*in.Area); a != "" {
			c, err := s.App.AreaColor(a)
			if err != nil {
				return err
			}
			p.Color = c
		}
	}
	if in.Start != nil {
		d, typ, err := model.ResolveDateInput(*in.Start)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		p.Start, p.StartType = d, typ
	}
	if in.End != nil {
		d, typ, err := model.ResolveDateInput(*in.End)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		p.End, p.EndType = d, typ
	}
	return nil
}

// AddProject creates a project. Missing dates default to today.
func (s *Service) AddProject(ctx context.Context, in ProjectInput) (*ProjectDTO, error) {
	today := model.NewDay(s.App.Now())
	p := model.Project{Start: today, End: today}
	if err := s.applyProject(&p, in); err != nil {
		return nil, err
	}
	p, err := s.App.AddProject(p)
	if err != nil {
		return nil, err
	}
	if err := s.commit(); err != nil {
		return nil, err
	}
	dto, _, err := s.ProjectByID(ctx, p.ID)
	return dto, err
}

// UpdateProject changes the given fields of a project.
func (s *Service) UpdateProject(ctx context.Context, id string, in ProjectInput) (*ProjectDTO, error) {
	p, err := s.App.Project(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyProject(&p, in); err != nil {
		return nil, err
	}
	if _, err := s.App.UpdateProject(p); err != nil {
		return nil, err
	}
	if err := s.commit(); err != nil {
		return nil, err
	}
	dto, _, err := s.ProjectByID(ctx, p.ID)
	return dto, err
}

// DeleteProject removes a project. Its events become standalone.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.App.DeleteProject(id); err != nil {
		return err
	}
	return s.commit()
}

// ListEvents returns the events of one project, the standalone events, or
// every event.
func (s *Service) ListEvents(ctx context.Context, projectID string, standalone bool) []EventDTO {
	var filter *string
	switch {
	case standalone:
		none := ""
		filter = &none
	case projectID != "":
		filter = &projectID
	}
	labels := s.App.Labels()
	out := []EventDTO{}
	for _, e := range s.App.Events(filter) {
		out = append(out, eventDTO(e, labels))
	}
	return out
}

func applyEvent(e *model.Event, in EventInput) error {
	if in.Name != nil {
		e.Name = *in.Name
	}
	if in.Project != nil {
		e.ProjectID = strings.TrimSpace(*in.Project)
	}
	if in.Comment != nil {
		e.Comment = *in.Comment
	}
	if in.Symbol != nil {
		g, err := glyph.Lookup(*in.Symbol)
		if err != nil {
			return err
		}
		e.Symbol = g.Key
	}
	if in.Start != nil {
		d, typ, err := model.ResolveDateInput(*in.Start)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		e.Start, e.StartType = d, typ
	}
	if in.End != nil {
		if strings.TrimSpace(*in.End) == "" {
			e.End, e.EndType = nil, ""
			return nil
		}
		d, typ, err := model.ResolveDateInput(*in.End)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		e.End, e.EndType = &d, typ
	}
	return nil
}

// AddEvent creates an event. A missing start defaults to today.
func (s *Service) AddEvent(ctx context.Context, in EventInput) (*EventDTO, error) {
	e := model.Event{Start: model.NewDay(s.App.Now())}
	if err := applyEvent(&e, in); err != nil {
		return nil, err
	}
	e, err := s.App.AddEvent(e)
	if err != nil {
		return nil, err
	}
	if err := s.commit(); err != nil {
		return nil, err
	}
	dto := eventDTO(e, s.App.Labels())
	return &dto, nil
}

// UpdateEvent changes the given fields of an event.
func (s *Service) UpdateEvent(ctx context.Context, id string, in EventInput) (*EventDTO, error) {
	e, err := s.App.Event(id)
	if err != nil {
		return nil, err
	}
	if err := applyEvent(&e, in); err != nil {
		return nil, err
	}
	e, err = s.App.UpdateEvent(e)
	if err != nil {
		return nil, err
	}
	if err := s.commit(); err != nil {
		return nil, err
	}
	dto := eventDTO(e, s.App.Labels())
	return &dto, nil
}

// DeleteEvent removes an event.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.App.DeleteEvent(id); err != nil {
		return err
	}
	return s.commit()
}

// Render lays the roadmap out and returns its geometry.
func (s *Service) Render(ctx context.Context, in RenderInput) (*render.FrameView, error) {
	sort, err := app.ParseSortKey(in.Sort)
	if err != nil {
		return nil, err
	}
	cols := in.Columns
	if cols <= 0 {
		cols = s.Columns
	}
	w := render.Window{View: in.View, Zoom: in.Zoom, Focus: in.Focus, Columns: cols}
	v, err := w.Viewport(s.App)
	if err != nil {
		return nil, err
	}
	f := s.App.Render(v, app.RenderOptions{Query: app.Query{Sort: sort}, Compact: in.Compact})
	fv := render.Describe(v, f, s.App.Range())
	return &fv, nil
}

// Undo steps back one mutation.
func (s *Service) Undo(ctx context.Context) error {
	if err := s.App.Undo(); err != nil {
		return err
	}
	return s.commit()
}

// Summary counts projects and events.
func (s *Service) Summary(ctx context.Context) app.Summary {
	return s.App.Summary()
}

// Document is the full export document.
func (s *Service) Document(ctx context.Context) model.Document {
	return s.App.Export()
}
