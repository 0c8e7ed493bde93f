package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/layout"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/timeutil"
	"tableflip.dev/roadmap/pkg/viewport"
)

// Render lays the roadmap out for one window and prints it as character
// cells, or as geometry in JSON or YAML.
type Render struct {
	Window  Window
	Options app.RenderOptions
	Format  string
	Out     io.Writer
	Profile termenv.Profile

	Service *app.Service
}

func (n *Render) Do(ctx context.Context) error {
	v, err := n.Window.Viewport(n.Service)
	if err != nil {
		return err
	}
	f := n.Service.Render(v, n.Options)
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Format != "" {
		return printers.Structured(out, n.Format, Describe(v, f, n.Service.Range()))
	}
	c := printers.NewCanvas(v.Scroll(), v.Width(), n.Window.TimelineColumns(), printers.DefaultGutter)
	c.Profile = n.Profile
	from, to := v.VisibleRange()
	_, _ = color.New(color.Bold).Fprintf(out, "Roadmap %s → %s", from.Format("2 Jan 2006"), to.Format("2 Jan 2006"))
	_, _ = color.New(color.Faint).Fprintf(out, "  zoom %.2fx\n", v.Zoom())
	_, err = io.WriteString(out, c.Render(f))
	return err
}

// FrameView is the machine readable form of a render pass.
type FrameView struct {
	Range        model.TimelineRange `json:"range" yaml:"range"`
	From         string              `json:"from" yaml:"from"`
	To           string              `json:"to" yaml:"to"`
	Zoom         float64             `json:"zoom" yaml:"zoom"`
	Scroll       float64             `json:"scroll" yaml:"scroll"`
	Width        float64             `json:"width" yaml:"width"`
	TotalWidth   float64             `json:"totalWidth" yaml:"totalWidth"`
	PixelsPerDay float64             `json:"pixelsPerDay" yaml:"pixelsPerDay"`
	Tier         string              `json:"tier" yaml:"tier"`
	Header       []BucketView        `json:"header" yaml:"header"`
	Sections     []SectionView       `json:"sections" yaml:"sections"`
	Standalone   []EventView         `json:"standalone" yaml:"standalone"`
	TodayX       *float64            `json:"todayX,omitempty" yaml:"todayX,omitempty"`
}

type BucketView struct {
	Label string  `json:"label" yaml:"label"`
	Year  int     `json:"year" yaml:"year"`
	Start string  `json:"start" yaml:"start"`
	Days  int     `json:"days" yaml:"days"`
	Left  float64 `json:"left" yaml:"left"`
	Width float64 `json:"width" yaml:"width"`
}

type SectionView struct {
	Label     string    `json:"label,omitempty" yaml:"label,omitempty"`
	Count     string    `json:"count,omitempty" yaml:"count,omitempty"`
	Collapsed bool      `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Rows      []RowView `json:"rows" yaml:"rows"`
}

type RowView struct {
	ID           string      `json:"id" yaml:"id"`
	Name         string      `json:"name" yaml:"name"`
	Color        string      `json:"color" yaml:"color"`
	Status       string      `json:"status" yaml:"status"`
	Left         float64     `json:"left" yaml:"left"`
	Width        float64     `json:"width" yaml:"width"`
	Lane         int         `json:"lane" yaml:"lane"`
	MarginBottom float64     `json:"marginBottom" yaml:"marginBottom"`
	LabelOffset  float64     `json:"labelOffset" yaml:"labelOffset"`
	LabelVisible bool        `json:"labelVisible" yaml:"labelVisible"`
	Events       []EventView `json:"events,omitempty" yaml:"events,omitempty"`
}

type EventView struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Symbol    string  `json:"symbol" yaml:"symbol"`
	Left      float64 `json:"left" yaml:"left"`
	Width     float64 `json:"width" yaml:"width"`
	Lane      int     `json:"lane" yaml:"lane"`
	Top       float64 `json:"top,omitempty" yaml:"top,omitempty"`
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	LabelRow  int     `json:"labelRow" yaml:"labelRow"`
	ShowLabel bool    `json:"showLabel" yaml:"showLabel"`
}

// Describe flattens a frame into its machine readable form.
func Describe(v *viewport.Viewport, f layout.Frame, r model.TimelineRange) FrameView {
	from, to := v.VisibleRange()
	fv := FrameView{
		Range:        r,
		From:         timeutil.FormatDate(from),
		To:           timeutil.FormatDate(to),
		Zoom:         v.Zoom(),
		Scroll:       v.Scroll(),
		Width:        v.Width(),
		TotalWidth:   f.Width,
		PixelsPerDay: f.PPD,
		Tier:         f.Header.Tier.String(),
		Header:       []BucketView{},
		Sections:     []SectionView{},
		Standalone:   events(f.Standalone.Events),
	}
	for _, b := range f.Header.Buckets {
		fv.Header = append(fv.Header, BucketView{
			Label: b.Label,
			Year:  b.Year,
			Start: timeutil.FormatDate(b.Start),
			Days:  b.Days,
			Left:  b.Left,
			Width: b.Width,
		})
	}
	for _, s := range f.Sections {
		sv := SectionView{Label: s.Label, Count: s.Count, Collapsed: s.Collapsed, Rows: []RowView{}}
		for _, row := range s.Rows {
			sv.Rows = append(sv.Rows, RowView{
				ID:           row.ID,
				Name:         row.Project.Name,
				Color:        row.Color,
				Status:       row.Status,
				Left:         row.Left,
				Width:        row.Width,
				Lane:         row.Lane,
				MarginBottom: row.MarginBottom,
				LabelOffset:  row.LabelOffset,
				LabelVisible: row.LabelVisible,
				Events:       events(row.Events),
			})
		}
		fv.Sections = append(fv.Sections, sv)
	}
	if f.HasToday {
		x := f.TodayX
		fv.TodayX = &x
	}
	return fv
}

func events(in []layout.EventItem) []EventView {
	out := make([]EventView, 0, len(in))
	for _, e := range in {
		out = append(out, EventView{
			ID:        e.ID,
			Name:      e.Event.Name,
			Symbol:    e.Glyph.Key,
			Left:      e.Left,
			Width:     e.Width,
			Lane:      e.Lane,
			Top:       e.Top,
			Label:     e.Label,
			LabelRow:  e.LabelRow,
			ShowLabel: e.ShowLabel,
		})
	}
	return out
}

// Today parses a --today override. An empty string means the service clock.
func Today(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := timeutil.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("render: today: %w", err)
	}
	return t, nil
}
