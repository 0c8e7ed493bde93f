// Package history steps back through saved project and event snapshots.
package history

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/roadmap/pkg/app"
)

type Undo struct {
	// Steps is how many changes to undo.
	Steps int
	Out   io.Writer

	Service *app.Service
}

func (n *Undo) Do(ctx context.Context) error {
	steps := n.Steps
	if steps < 1 {
		steps = 1
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	for i := 0; i < steps; i++ {
		if err := n.Service.Undo(); err != nil {
			if i > 0 {
				_, _ = color.New(color.Faint).Fprintf(out, "Undid %d of %d changes.\n", i, steps)
			}
			return err
		}
	}
	_, _ = color.New(color.Bold).Fprintf(out, "Undid %d change", steps)
	if steps != 1 {
		_, _ = color.New(color.Bold).Fprint(out, "s")
	}
	_, _ = color.New(color.Faint).Fprintf(out, ", %d left.\n", n.Service.UndoDepth())
	return nil
}
