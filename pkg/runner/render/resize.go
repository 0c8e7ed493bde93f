package render

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/gesture"
	"tableflip.dev/roadmap/pkg/timeutil"
)

// Resize replays a handle drag of DX pixels through the gesture engine and
// commits it, the way a pointer would in an interactive view.
type Resize struct {
	Target gesture.Target
	Side   gesture.Side
	DX     float64
	Window Window
	Out    io.Writer

	Service *app.Service
}

func (n *Resize) Do(ctx context.Context) error {
	v, err := n.Window.Viewport(n.Service)
	if err != nil {
		return err
	}
	left, width, err := n.Service.Geometry(v, n.Target)
	if err != nil {
		return err
	}
	x := left + width
	if n.Side == gesture.SideLeft {
		x = left
	}
	if _, err := n.Service.BeginResize(v, n.Target, n.Side, x); err != nil {
		return err
	}
	r, err := n.Service.MoveResize(x + n.DX)
	if err != nil {
		n.Service.CancelResize()
		return err
	}
	c, applied, err := n.Service.CommitResize(v)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if !applied && !c.Moved {
		_, _ = fmt.Fprintf(out, "%s %s: nothing moved, dates unchanged\n", n.Target.Kind, n.Target.ID)
		return nil
	}
	if !applied {
		_, _ = fmt.Fprintf(out, "%s %s disappeared, nothing changed\n", n.Target.Kind, n.Target.ID)
		return nil
	}
	faint := color.New(color.Faint)
	_, _ = fmt.Fprintf(out, "%s %s: %s → %s", n.Target.Kind, n.Target.ID, timeutil.FormatDate(c.Start), timeutil.FormatDate(c.End))
	_, _ = faint.Fprintf(out, " (%d days, bar %.0fpx → %.0fpx at %.2fpx/day)\n", c.Days(), width, r.Width, v.PixelsPerDay())
	return nil
}
