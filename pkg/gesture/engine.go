package gesture

import "tableflip.dev/roadmap/pkg/coord"

// Engine holds the current State for callers that need a mutable machine.
// It is not safe for concurrent use.
type Engine struct {
	state State
}

// State returns the current state; a zero Engine is Idle.
func (e *Engine) State() State {
	if e.state == nil {
		return Idle{}
	}
	return e.state
}

// Active reports whether a gesture is in progress.
func (e *Engine) Active() bool {
	_, idle := e.State().(Idle)
	return !idle
}

// Resizing returns the in-flight resize, if any.
func (e *Engine) Resizing() (Resizing, bool) {
	r, ok := e.State().(Resizing)
	return r, ok
}

// BeginResize enters Resizing. It fails if another gesture is active.
func (e *Engine) BeginResize(target Target, side Side, x, left, width float64) (Resizing, error) {
	if e.Active() {
		return Resizing{}, ErrBusy
	}
	r := BeginResize(target, side, x, left, width)
	e.state = r
	return r, nil
}

// BeginDrag enters Dragging. It fails if another gesture is active.
func (e *Engine) BeginDrag(x, scroll float64) (Dragging, error) {
	if e.Active() {
		return Dragging{}, ErrBusy
	}
	d := BeginDrag(x, scroll)
	e.state = d
	return d, nil
}

// Move feeds a pointer position to the active gesture.
func (e *Engine) Move(x float64) (State, error) {
	switch s := e.State().(type) {
	case Resizing:
		e.state = s.Move(x)
	case Dragging:
		e.state = s.Move(x)
	default:
		return s, ErrIdle
	}
	return e.state, nil
}

// Release ends the active gesture and returns to Idle. A resize yields its
// Commit; a drag yields whether it should count as a click.
type Release struct {
	Commit  *Commit
	Clicked bool
	Scroll  float64
}

// Release finishes the gesture using m to convert pixels back to dates.
func (e *Engine) Release(m coord.Mapper) (Release, error) {
	var out Release
	switch s := e.State().(type) {
	case Resizing:
		c := s.Commit(m)
		out.Commit = &c
	case Dragging:
		out.Clicked = s.Clicked()
		out.Scroll = s.Scroll
	default:
		return out, ErrIdle
	}
	e.state = Idle{}
	return out, nil
}

// Cancel abandons any gesture without producing a result. It reports
// whether a resize was abandoned.
func (e *Engine) Cancel() bool {
	_, resizing := e.State().(Resizing)
	e.state = Idle{}
	return resizing
}
