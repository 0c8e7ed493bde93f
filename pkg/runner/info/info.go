package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/store"
)

type Info struct {
	Config     store.Config
	ConfigFile string
	Out        io.Writer

	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("ROADMAP_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "ROADMAP_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "ROADMAP_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if n.ConfigFile != "" {
		_, _ = fmt.Fprintln(out, "Config.file: ", n.ConfigFile)
	}
	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())

	if n.Service == nil {
		return fmt.Errorf("Failed to create roadmap service.")
	}

	sum := n.Service.Summary()
	start, end := sum.Range.Bounds()
	_, _ = fmt.Fprintf(out, "Range:        %d – %d (%s to %s)\n", sum.Range.StartYear, sum.Range.EndYear,
		start.Format("2 Jan 2006"), end.AddDate(0, 0, -1).Format("2 Jan 2006"))
	_, _ = fmt.Fprintf(out, "Projects:     %d (%d leads)\n", sum.Projects, sum.Leads)
	_, _ = fmt.Fprintf(out, "Events:       %d (%d standalone)\n", sum.Events, sum.Standalone)
	_, _ = fmt.Fprintf(out, "Undo steps:   %d\n", sum.UndoDepth)

	counts(out, "By status", sum.ByStatus)
	counts(out, "By area", sum.ByArea)
	return nil
}

func counts(out io.Writer, title string, m map[string]int) {
	_, _ = color.New(color.Bold).Fprintf(out, "%s:\n", title)
	if len(m) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no projects")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, k := range keys {
		tbl.AddRow("  "+k, m[k])
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(out, tbl)
}
