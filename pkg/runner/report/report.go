// Package report prints the work that overlaps a window of days.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/glyph"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/timeutil"
)

type Report struct {
	Since time.Time
	Until time.Time
	// Label names the window in the title, for example "3m".
	Label  string
	Format string
	Out    io.Writer

	Service *app.Service
}

func (n *Report) Do(ctx context.Context) error {
	result := n.Service.Report(n.Since, n.Until)
	if n.Format != "" {
		return printers.Structured(n.Out, n.Format, result)
	}
	labels := n.Service.Labels()

	title := fmt.Sprintf("Report · %s → %s", timeutil.FormatDate(result.Since), timeutil.FormatDate(result.Until))
	if n.Label != "" {
		title = fmt.Sprintf("Report · last %s (%s → %s)", n.Label, timeutil.FormatDate(result.Since), timeutil.FormatDate(result.Until))
	}

	groups := make([]printers.Group, 0, len(result.Sections)+1)
	for _, section := range result.Sections {
		g := printers.Group{Label: section.Label}
		for _, item := range section.Items {
			p := item.Project
			line := fmt.Sprintf("%s  %s", p.Name, labels.ProjectRange(p))
			if p.Lead != "" {
				line += "  · " + p.Lead
			}
			g.Lines = append(g.Lines, line)
			for _, e := range item.Events {
				g.Lines = append(g.Lines, "    "+eventLine(labels, e))
			}
		}
		groups = append(groups, g)
	}
	if len(result.Standalone) > 0 {
		g := printers.Group{Label: "Events"}
		for _, e := range result.Standalone {
			g.Lines = append(g.Lines, eventLine(labels, e))
		}
		groups = append(groups, g)
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.Sections(title, groups)
	return nil
}

func eventLine(labels model.Labels, e model.Event) string {
	return strings.Join([]string{glyph.ForKey(e.Symbol).Symbol, e.Name, labels.EventRange(e)}, " ")
}
