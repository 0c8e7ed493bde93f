package layout

import (
	"fmt"
	"math"
	"time"

	"tableflip.dev/roadmap/pkg/coord"
	"tableflip.dev/roadmap/pkg/glyph"
	"tableflip.dev/roadmap/pkg/grid"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/timeutil"
)

// Geometry constants, in pixels.
const (
	MinBarWidth      = 2
	MinDurationWidth = 20
	PointLeadIn      = 8
	PointTail        = 16

	MarkerPad           = 10
	StandaloneTop       = 10
	StandaloneLane      = 45
	StandaloneBase      = 60
	LabelPad            = 8
	LabelRowHeight      = 38
	LabelMarginBase     = 10
	DefaultProjectColor = "#31567D"
)

// GroupBy selects how project rows are sectioned.
type GroupBy int

const (
	GroupNone GroupBy = iota
	GroupStatus
	GroupLead
)

// Input is everything a render pass reads. Projects arrive filtered and
// sorted; Build never reorders them.
type Input struct {
	Mapper   coord.Mapper
	Projects []model.Project
	Events   []model.Event
	Statuses []model.Status
	Areas    []model.Area
	Labels   model.Labels

	Compact      bool
	Group        GroupBy
	Collapsed    map[string]bool
	PackProjects bool
	Today        time.Time

	// Scroll and ViewWidth position sticky project labels. A zero ViewWidth
	// skips sticky placement.
	Scroll    float64
	ViewWidth float64
}

// Item is the renderer-facing geometry of one timeline item.
type Item struct {
	ID    string
	Left  float64
	Width float64
	Lane  int
}

// EventItem is an event marker with its label placement.
type EventItem struct {
	Item
	Event      model.Event
	Glyph      glyph.Glyph
	Extent     Extent
	Label      string
	LabelWidth float64
	LabelRow   int
	ShowLabel  bool
	Top        float64
}

// ProjectRow is one project bar and its attached events.
type ProjectRow struct {
	Item
	Project      model.Project
	Color        string
	Status       string
	Events       []EventItem
	MaxLabelRow  int
	MarginBottom float64
	LabelOffset  float64
	LabelVisible bool
}

// Section is a group of project rows under a header.
type Section struct {
	Key       string
	Label     string
	Count     string
	Collapsed bool
	Rows      []ProjectRow
}

// StandaloneRow holds events without a project, packed into lanes.
type StandaloneRow struct {
	Events  []EventItem
	MaxLane int
	Height  float64
}

// Frame is the complete geometry of one render pass.
type Frame struct {
	Width      float64
	PPD        float64
	Header     grid.Header
	Grid       []grid.Line
	Sections   []Section
	Standalone StandaloneRow
	MaxLane    int
	TodayX     float64
	HasToday   bool
}

// Build lays out one frame. It is a pure function of in.
func Build(in Input) Frame {
	m := in.Mapper
	labels := in.Labels
	if labels == nil {
		labels = model.DefaultLabels()
	}
	f := Frame{
		Width:  m.TotalWidth(),
		PPD:    m.PixelsPerDay(),
		Header: grid.BuildHeader(m.Start, m.End, m.PixelsPerDay(), labels),
		Grid:   grid.BuildGrid(m.Start, m.End, m.PixelsPerDay()),
	}

	byProject := make(map[string][]model.Event)
	var standalone []model.Event
	for _, e := range in.Events {
		if e.Standalone() {
			standalone = append(standalone, e)
			continue
		}
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e)
	}

	rows := make([]ProjectRow, len(in.Projects))
	for i, p := range in.Projects {
		rows[i] = projectRow(in, labels, p, byProject[p.ID])
	}
	if in.PackProjects {
		extents := make([]Extent, len(rows))
		for i, r := range rows {
			extents[i] = Extent{Left: r.Left, Right: r.Left + r.Width}
		}
		packed := AssignLanes(extents, MarkerPad)
		for i := range rows {
			rows[i].Lane = packed.Lanes[i]
		}
		f.MaxLane = packed.MaxLane
	}
	f.Sections = sections(in, labels, rows)
	f.Standalone = standaloneRow(in, labels, standalone)

	if today := timeutil.Midnight(in.Today); !in.Today.IsZero() && m.Contains(today) {
		f.TodayX = m.DateToX(today)
		f.HasToday = true
	}
	return f
}

// Items flattens the frame into renderer tuples: project bars first, then
// attached events, then standalone events.
func (f Frame) Items() []Item {
	var items []Item
	for _, s := range f.Sections {
		for _, r := range s.Rows {
			items = append(items, r.Item)
			for _, e := range r.Events {
				items = append(items, e.Item)
			}
		}
	}
	for _, e := range f.Standalone.Events {
		items = append(items, e.Item)
	}
	return items
}

// Rows returns every project row in display order, including collapsed ones.
func (f Frame) Rows() []ProjectRow {
	var rows []ProjectRow
	for _, s := range f.Sections {
		rows = append(rows, s.Rows...)
	}
	return rows
}

func projectRow(in Input, labels model.Labels, p model.Project, events []model.Event) ProjectRow {
	m := in.Mapper
	left := m.DateToX(p.Start.Time)
	width := math.Max(MinBarWidth, m.DateToX(p.End.Time)-left)
	r := ProjectRow{
		Item:    Item{ID: p.ID, Left: left, Width: width},
		Project: p,
		Color:   projectColor(p, in.Areas),
		Status:  statusName(p.Status, in.Statuses, labels),
	}

	r.Events = make([]EventItem, len(events))
	for i, e := range events {
		r.Events[i] = eventItem(m, labels, e)
	}
	if !in.Compact && len(r.Events) > 0 {
		ls := make([]Label, len(r.Events))
		for i, ev := range r.Events {
			ls[i] = Label{Anchor: ev.Extent.Left, Width: ev.LabelWidth}
		}
		packed := StackLabels(ls, LabelPad)
		for i := range r.Events {
			r.Events[i].LabelRow = packed.Lanes[i]
			r.Events[i].ShowLabel = true
		}
		r.MaxLabelRow = packed.MaxLane
		r.MarginBottom = LabelMarginBase + float64(packed.MaxLane+1)*LabelRowHeight
	}

	if in.ViewWidth > 0 {
		r.LabelOffset, r.LabelVisible = StickyLabel(left, width, EstimateLabelWidth(p.Name), in.Scroll, in.ViewWidth)
	}
	return r
}

func eventItem(m coord.Mapper, labels model.Labels, e model.Event) EventItem {
	start := m.DateToX(e.Start.Time)
	it := EventItem{
		Item:  Item{ID: e.ID, Left: start},
		Event: e,
		Glyph: glyph.ForKey(e.Symbol),
		Label: e.Name + " " + labels.EventShortRange(e),
	}
	if e.HasDuration() {
		end := m.DateToX(e.End.Time)
		it.Width = math.Max(MinDurationWidth, end-start)
		it.Extent = Extent{Left: start, Right: start + it.Width}
	} else {
		it.Extent = Extent{Left: start - PointLeadIn, Right: start + PointTail}
	}
	it.LabelWidth = EstimateLabelWidth(it.Label)
	return it
}

func standaloneRow(in Input, labels model.Labels, events []model.Event) StandaloneRow {
	row := StandaloneRow{}
	if len(events) == 0 {
		return row
	}
	row.Events = make([]EventItem, len(events))
	extents := make([]Extent, len(events))
	for i, e := range events {
		row.Events[i] = eventItem(in.Mapper, labels, e)
		extents[i] = row.Events[i].Extent
	}
	packed := AssignLanes(extents, MarkerPad)
	for i := range row.Events {
		lane := packed.Lanes[i]
		row.Events[i].Lane = lane
		row.Events[i].Top = StandaloneTop + float64(lane)*StandaloneLane
	}
	row.MaxLane = packed.MaxLane
	row.Height = StandaloneBase + float64(packed.MaxLane)*StandaloneLane
	return row
}

func sections(in Input, labels model.Labels, rows []ProjectRow) []Section {
	if in.Group == GroupNone {
		if len(rows) == 0 {
			return nil
		}
		return []Section{{Rows: rows}}
	}
	var out []Section
	index := make(map[string]int)
	for _, r := range rows {
		key, label := groupKey(in, labels, r)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Section{Key: key, Label: label, Collapsed: in.Collapsed[key]})
		}
		out[i].Rows = append(out[i].Rows, r)
	}
	for i := range out {
		out[i].Count = fmt.Sprintf(labels.Get(model.LabelProjectsCounter), len(out[i].Rows))
	}
	return out
}

func groupKey(in Input, labels model.Labels, r ProjectRow) (string, string) {
	switch in.Group {
	case GroupStatus:
		return r.Project.Status, r.Status
	default:
		if r.Project.Lead == "" {
			return "", labels.Get(model.LabelUnassigned)
		}
		return r.Project.Lead, r.Project.Lead
	}
}

func projectColor(p model.Project, areas []model.Area) string {
	if p.Color != "" {
		return p.Color
	}
	if len(areas) > 0 && areas[0].Color != "" {
		return areas[0].Color
	}
	return DefaultProjectColor
}

func statusName(id string, statuses []model.Status, labels model.Labels) string {
	for _, s := range statuses {
		if s.ID == id {
			return s.Name
		}
	}
	if id == "" {
		return ""
	}
	return labels.Get(model.LabelUnknownStatus)
}
