// Package gesture holds the pointer state machines of the timeline: resizing
// a bar by one of its handles and drag-to-scroll. Transitions are pure values
// so callers can drive them without any UI toolkit.
package gesture

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"tableflip.dev/roadmap/pkg/coord"
	"tableflip.dev/roadmap/pkg/timeutil"
)

const (
	// MinWidth is the narrowest a bar may be resized to, in pixels.
	MinWidth = 20
	// DragThreshold is how far the pointer must travel before a press
	// becomes a scroll drag instead of a click.
	DragThreshold = 5
)

var (
	ErrBusy = errors.New("gesture: another gesture is in progress")
	ErrIdle = errors.New("gesture: no gesture in progress")
)

// Side is the resize handle being dragged.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// ParseSide reads "left" or "right".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r", "end":
		return SideRight, nil
	case "left", "l", "start":
		return SideLeft, nil
	}
	return SideRight, fmt.Errorf("gesture: unknown side %q", s)
}

// Kind distinguishes what a resize applies to.
type Kind int

const (
	KindProject Kind = iota
	KindEvent
)

func (k Kind) String() string {
	if k == KindEvent {
		return "event"
	}
	return "project"
}

// Target names the item being resized.
type Target struct {
	Kind Kind
	ID   string
}

// State is one of Idle, Resizing or Dragging.
type State interface {
	isState()
}

// Idle is the resting state.
type Idle struct{}

// Resizing tracks a handle drag. Left and Width are the tentative geometry;
// the date model is not touched until Commit.
type Resizing struct {
	Target    Target
	Side      Side
	StartX    float64
	OrigLeft  float64
	OrigWidth float64
	Left      float64
	Width     float64
}

// Dragging tracks a drag-to-scroll press.
type Dragging struct {
	StartX      float64
	StartScroll float64
	Scroll      float64
	Dragged     bool
}

func (Idle) isState()     {}
func (Resizing) isState() {}
func (Dragging) isState() {}

// BeginResize captures the rendered geometry of target at pointer x.
func BeginResize(target Target, side Side, x, left, width float64) Resizing {
	return Resizing{
		Target:    target,
		Side:      side,
		StartX:    x,
		OrigLeft:  left,
		OrigWidth: width,
		Left:      left,
		Width:     width,
	}
}

// Move applies the pointer at x. A left-handle move that would bring the left
// edge within MinWidth of the original right edge is ignored. Back at the
// starting point the original geometry is restored.
func (r Resizing) Move(x float64) Resizing {
	dx := x - r.StartX
	if dx == 0 {
		r.Left, r.Width = r.OrigLeft, r.OrigWidth
		return r
	}
	if r.Side == SideRight {
		r.Width = math.Max(MinWidth, r.OrigWidth+dx)
		return r
	}
	left := r.OrigLeft + dx
	if left < r.OrigLeft+r.OrigWidth-MinWidth {
		r.Left = left
		r.Width = math.Max(MinWidth, r.OrigWidth-dx)
	}
	return r
}

// Moved reports whether the tentative geometry differs from where the
// gesture began.
func (r Resizing) Moved() bool {
	return r.Left != r.OrigLeft || r.Width != r.OrigWidth
}

// Commit is a finished resize expressed as whole days. Moved is false when
// the handle was released where it was picked up.
type Commit struct {
	Target Target
	Start  time.Time
	End    time.Time
	Moved  bool
}

// Days is the committed duration.
func (c Commit) Days() int {
	return timeutil.DaysBetween(c.Start, c.End)
}

// Commit converts the tentative geometry back to dates by snapping both
// edges to whole days. A left-handle drag leaves the right edge where it was,
// so the end date stays put.
func (r Resizing) Commit(m coord.Mapper) Commit {
	return Commit{
		Target: r.Target,
		Start:  m.XToDate(r.Left),
		End:    m.XToDate(r.Left + r.Width),
		Moved:  r.Moved(),
	}
}

// BeginDrag records a press at x with the viewport at scroll.
func BeginDrag(x, scroll float64) Dragging {
	return Dragging{StartX: x, StartScroll: scroll, Scroll: scroll}
}

// Move scrolls opposite to the pointer once it has travelled more than
// DragThreshold pixels. Once a press has become a drag it stays one.
func (d Dragging) Move(x float64) Dragging {
	dx := x - d.StartX
	if math.Abs(dx) > DragThreshold {
		d.Dragged = true
		d.Scroll = d.StartScroll - dx
	}
	return d
}

// Clicked reports whether releasing now should be treated as a click.
func (d Dragging) Clicked() bool {
	return !d.Dragged
}
