// Package render holds the runners that draw the timeline and drive the
// resize gesture without a terminal UI.
package render

import (
	"os"

	"github.com/charmbracelet/x/term"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/viewport"
)

// Window positions the viewport before a render or resize.
type Window struct {
	// View is a preset name; empty keeps the range start at zoom 1.
	View      string
	Zoom      float64
	Scroll    float64
	ScrollSet bool
	// Focus centres the window on this event.
	Focus string
	// Columns is the width of the timeline area in cells; zero asks the
	// terminal.
	Columns int
}

// TimelineColumns is the number of cells left for the timeline after the
// gutter.
func (w Window) TimelineColumns() int {
	if w.Columns > 0 {
		return w.Columns
	}
	cols := printers.DefaultColumns
	if width, _, err := term.GetSize(os.Stdout.Fd()); err == nil && width > 0 {
		cols = width
	}
	return max(10, cols-printers.DefaultGutter)
}

// Viewport builds the viewport described by w.
func (w Window) Viewport(svc *app.Service) (*viewport.Viewport, error) {
	v := svc.NewViewport(float64(w.TimelineColumns() * printers.CellPixels))
	if w.View != "" {
		if err := v.ApplyPreset(w.View, svc.Now()); err != nil {
			return nil, err
		}
	}
	if w.Zoom > 0 {
		v.SetZoom(w.Zoom)
	}
	if w.ScrollSet {
		v.SetScroll(w.Scroll)
	}
	if w.Focus != "" {
		if err := svc.FocusEvent(v, w.Focus); err != nil {
			return nil, err
		}
	}
	return v, nil
}
