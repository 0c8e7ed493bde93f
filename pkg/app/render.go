package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/gesture"
	"tableflip.dev/roadmap/pkg/layout"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/timeutil"
	"tableflip.dev/roadmap/pkg/viewport"
)

// RenderOptions select what a render pass shows.
type RenderOptions struct {
	Query
	Compact      bool
	GroupByLead  bool
	Collapsed    map[string]bool
	PackProjects bool
	// Today positions the today marker; zero uses the service clock.
	Today time.Time
}

// Render lays out the current state for v. Sorting by status groups rows
// under status headers.
func (s *Service) Render(v *viewport.Viewport, o RenderOptions) layout.Frame {
	s.mu.Lock()
	in := layout.Input{
		Mapper:       v.Mapper(),
		Projects:     s.queryLocked(o.Query),
		Events:       model.CloneEvents(s.state.Events),
		Statuses:     append([]model.Status(nil), s.state.Statuses...),
		Areas:        append([]model.Area(nil), s.state.Areas...),
		Labels:       s.state.Labels.Merge(nil),
		Compact:      o.Compact,
		Collapsed:    o.Collapsed,
		PackProjects: o.PackProjects,
		Today:        o.Today,
		Scroll:       v.Scroll(),
		ViewWidth:    v.Width(),
	}
	if r, ok := s.resize.Resizing(); ok {
		overlayResize(&in, r)
	}
	s.mu.Unlock()

	if in.Today.IsZero() {
		in.Today = s.opts.Now()
	}
	switch {
	case o.Sort == SortStatus:
		in.Group = layout.GroupStatus
	case o.GroupByLead:
		in.Group = layout.GroupLead
	}
	return layout.Build(in)
}

// overlayResize shows the tentative geometry of an in-flight resize by
// snapping it to days on a copy of the item.
func overlayResize(in *layout.Input, r gesture.Resizing) {
	c := r.Commit(in.Mapper)
	switch r.Target.Kind {
	case gesture.KindProject:
		for i := range in.Projects {
			if in.Projects[i].ID == r.Target.ID {
				in.Projects[i].Start = model.NewDay(c.Start)
				in.Projects[i].End = model.NewDay(c.End)
			}
		}
	case gesture.KindEvent:
		for i := range in.Events {
			if in.Events[i].ID == r.Target.ID {
				end := model.NewDay(c.End)
				in.Events[i].Start = model.NewDay(c.Start)
				in.Events[i].End = &end
			}
		}
	}
}

// Geometry returns the left edge and pixel span of a resizable item. The
// minimum widths layout applies when drawing are not included, so an
// untouched gesture converts back to the same dates.
func (s *Service) Geometry(v *viewport.Viewport, target gesture.Target) (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.geometryLocked(v, target)
}

func (s *Service) geometryLocked(v *viewport.Viewport, target gesture.Target) (float64, float64, error) {
	m := v.Mapper()
	switch target.Kind {
	case gesture.KindProject:
		i := s.state.ProjectByID(target.ID)
		if i < 0 {
			return 0, 0, fmt.Errorf("%w: project %q", ErrNotFound, target.ID)
		}
		p := s.state.Projects[i]
		left := m.DateToX(p.Start.Time)
		return left, m.DateToX(p.End.Time) - left, nil
	case gesture.KindEvent:
		i := s.state.EventByID(target.ID)
		if i < 0 {
			return 0, 0, fmt.Errorf("%w: event %q", ErrNotFound, target.ID)
		}
		e := s.state.Events[i]
		if !e.HasDuration() {
			return 0, 0, fmt.Errorf("%w: event %q has no end date", ErrNotResizable, target.ID)
		}
		left := m.DateToX(e.Start.Time)
		return left, m.DateToX(e.End.Time) - left, nil
	}
	return 0, 0, ErrNotResizable
}

// BeginResize starts dragging a handle of target from content position x.
// The pre-gesture state is pushed to the undo stack so the whole gesture
// undoes as one step.
func (s *Service) BeginResize(v *viewport.Viewport, target gesture.Target, side gesture.Side, x float64) (gesture.Resizing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	left, width, err := s.geometryLocked(v, target)
	if err != nil {
		return gesture.Resizing{}, err
	}
	r, err := s.resize.BeginResize(target, side, x, left, width)
	if errors.Is(err, gesture.ErrBusy) {
		return r, ErrGestureActive
	} else if err != nil {
		return r, err
	}
	s.pushUndo()
	s.resizeMark = s.seq
	s.log.Debug("resize started",
		zap.String("kind", target.Kind.String()),
		zap.String("id", target.ID),
		zap.String("side", side.String()),
	)
	return r, nil
}

// MoveResize feeds the pointer position to the active resize.
func (s *Service) MoveResize(x float64) (gesture.Resizing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resize.Resizing(); !ok {
		return gesture.Resizing{}, gesture.ErrIdle
	}
	st, err := s.resize.Move(x)
	if err != nil {
		return gesture.Resizing{}, err
	}
	return st.(gesture.Resizing), nil
}

// Resizing returns the in-flight resize, if any.
func (s *Service) Resizing() (gesture.Resizing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resize.Resizing()
}

// CommitResize ends the resize and writes the snapped dates back. Applied is
// false when the handle never moved, leaving the item and the undo stack as
// they were, or when the item disappeared mid-gesture.
func (s *Service) CommitResize(v *viewport.Viewport) (c gesture.Commit, applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resize.Resizing(); !ok {
		return c, false, gesture.ErrIdle
	}
	rel, err := s.resize.Release(v.Mapper())
	if err != nil {
		return c, false, err
	}
	c = *rel.Commit
	if !c.Moved {
		s.dropGestureUndo()
		s.log.Debug("resize released without moving", zap.String("id", c.Target.ID))
		return c, false, nil
	}
	start, end := model.NewDay(c.Start), model.NewDay(c.End)
	switch c.Target.Kind {
	case gesture.KindProject:
		if i := s.state.ProjectByID(c.Target.ID); i >= 0 {
			p := &s.state.Projects[i]
			p.Start, p.End = start, end
			p.StartType, p.EndType = model.DateTypeDate, model.DateTypeDate
			applied = true
		}
	case gesture.KindEvent:
		if i := s.state.EventByID(c.Target.ID); i >= 0 {
			e := &s.state.Events[i]
			e.Start, e.End = start, &end
			e.StartType, e.EndType = model.DateTypeDate, model.DateTypeDate
			applied = true
		}
	}
	if !applied {
		s.dropGestureUndo()
		s.log.Warn("gesture discarded", zap.String("id", c.Target.ID))
		return c, false, nil
	}
	s.changed()
	s.log.Info("gesture committed",
		zap.String("id", c.Target.ID),
		zap.String("start", timeutil.FormatDate(c.Start)),
		zap.String("end", timeutil.FormatDate(c.End)),
	)
	return c, true, nil
}

// CancelResize abandons the active resize without touching the model and
// removes its undo snapshot.
func (s *Service) CancelResize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.resize.Cancel() {
		return false
	}
	s.dropGestureUndo()
	s.log.Debug("resize cancelled")
	return true
}

// dropGestureUndo pops the snapshot BeginResize pushed, unless something else
// has touched the stack since.
func (s *Service) dropGestureUndo() {
	if s.seq == s.resizeMark && len(s.undo) > 0 {
		s.undo = s.undo[:len(s.undo)-1]
		s.seq++
	}
}
