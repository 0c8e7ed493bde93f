package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"

	"tableflip.dev/roadmap/pkg/model"
)

type PrettyPrint struct {
	ShowID  bool
	Out     io.Writer
	Profile termenv.Profile
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Projects prints a project table. Area and status names are resolved
// against st.
func (pp *PrettyPrint) Projects(st model.State, projects ...model.Project) {
	pp.TitleWithCount("Projects", len(projects), "project")
	if len(projects) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	labels := st.Labels

	tbl := pp.table()
	header := []interface{}{bold.Sprint("Name"), bold.Sprint("Lead"), bold.Sprint("Status"), bold.Sprint("Area"), bold.Sprint("Dates")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, p := range projects {
		area, ok := st.AreaName(p.Color)
		if !ok {
			area = labels.Get(model.LabelOtherArea)
		}
		status := labels.Get(model.LabelUnknownStatus)
		if st.StatusIndex(p.Status) >= 0 {
			status = st.StatusName(p.Status)
		}
		row := []interface{}{p.Name, p.Lead, status, Swatch(pp.Profile, p.Color, 2) + " " + area, labels.ProjectRange(p)}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(p.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

// Events prints an event table with the owning project's name.
func (pp *PrettyPrint) Events(st model.State, events ...model.Event) {
	pp.TitleWithCount("Events", len(events), "event")
	if len(events) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := pp.table()
	header := []interface{}{"", bold.Sprint("Name"), bold.Sprint("When"), bold.Sprint("Project")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, e := range events {
		project := "-"
		if i := st.ProjectByID(e.ProjectID); i >= 0 {
			project = st.Projects[i].Name
		}
		row := []interface{}{glyphFor(e).Symbol, e.Name, st.Labels.EventRange(e), project}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(boolIndex(pp.ShowID))
	pp.flush(tbl)
}

// Areas prints the area palette with project counts.
func (pp *PrettyPrint) Areas(areas []model.Area, used map[string]int) {
	pp.TitleWithCount("Areas", len(areas), "area")
	if len(areas) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow("", bold.Sprint("Name"), bold.Sprint("Colour"), bold.Sprint("Projects"))
	for _, a := range areas {
		tbl.AddRow(Swatch(pp.Profile, a.Color, 2), a.Name, a.Color, used[a.Color])
	}
	pp.flush(tbl)
}

// Statuses prints the status order.
func (pp *PrettyPrint) Statuses(statuses []model.Status, used map[string]int) {
	pp.TitleWithCount("Statuses", len(statuses), "status")
	if len(statuses) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Projects"))
	for i, s := range statuses {
		tbl.AddRow(i+1, s.ID, s.Name, used[s.ID])
	}
	tbl.RightAlign(0)
	pp.flush(tbl)
}

// Sections prints one titled block per group, each line indented under it.
func (pp *PrettyPrint) Sections(title string, groups []Group) {
	pp.Title(title)
	if len(groups) == 0 {
		pp.none()
		return
	}
	f := color.New(color.Faint)
	for _, g := range groups {
		_, _ = color.New(color.Bold).Fprint(pp.out(), g.Label)
		_, _ = f.Fprintf(pp.out(), " (%d)\n", len(g.Lines))
		for _, l := range g.Lines {
			_, _ = fmt.Fprintf(pp.out(), "  %s\n", strings.TrimRight(l, " "))
		}
	}
	pp.NewLine()
}

// Group is a labelled list of pre-formatted lines.
type Group struct {
	Label string
	Lines []string
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
