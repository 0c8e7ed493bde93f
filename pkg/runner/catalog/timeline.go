package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/roadmap/pkg/app"
)

// Range prints the timeline range, first moving it when Start or End is set.
type Range struct {
	Start int
	End   int

	Out     io.Writer
	Service *app.Service
}

func (n *Range) Do(ctx context.Context) error {
	r := n.Service.Range()
	if n.Start != 0 || n.End != 0 {
		if n.Start != 0 {
			r.StartYear = n.Start
		}
		if n.End != 0 {
			r.EndYear = n.End
		}
		var err error
		if r, err = n.Service.SetRange(r.StartYear, r.EndYear); err != nil {
			return err
		}
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	start, end := r.Bounds()
	_, _ = fmt.Fprintf(out, "%d – %d ", r.StartYear, r.EndYear)
	_, _ = color.New(color.Faint).Fprintf(out, "(%s to %s, exclusive)\n", start.Format("2 Jan 2006"), end.Format("2 Jan 2006"))
	return nil
}
