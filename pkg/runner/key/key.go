// Package key prints the legend of event markers.
package key

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/roadmap/pkg/glyph"
)

// Key prints a glyph legend describing the event markers.
type Key struct {
	Out io.Writer
}

// Do renders the marker key.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, "")

	gs := glyph.DefaultGlyphs()
	sort.Sort(glyph.ByOrder(gs))

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Marker"), bold.Sprint("Symbol"), bold.Sprint("Meaning"), bold.Sprint("Also"))
	for _, g := range gs {
		var aliases []string
		for _, a := range g.Aliases {
			if a != "" {
				aliases = append(aliases, a)
			}
		}
		tbl.AddRow(g.Symbol, g.Key, g.Meaning, faint.Sprint(strings.Join(aliases, ", ")))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
