package options

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/model"
)

func TestDateOptionsShortForm(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 12, 5, 15, 0, 0, 0, time.Local) }
	tests := []struct {
		in   string
		want model.Day
		typ  model.DateType
	}{
		{in: "12/24", want: model.DayOf(2024, 12, 24), typ: model.DateTypeDate},
		{in: "12/5", want: model.DayOf(2024, 12, 5), typ: model.DateTypeDate},
		{in: "1/3", want: model.DayOf(2025, 1, 3), typ: model.DateTypeDate},
		{in: "2024-W12", want: model.DayOf(2024, 3, 18), typ: model.DateTypeWeek},
		{in: "2024-03", want: model.DayOf(2024, 3, 1), typ: model.DateTypeMonth},
		{in: "2024-03-05", want: model.DayOf(2024, 3, 5), typ: model.DateTypeDate},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			o := DateOptions{Start: tt.in, Now: now}
			d, typ, ok, err := o.GetStart()
			if err != nil || !ok {
				t.Fatalf("GetStart(%q) = %v %v", tt.in, ok, err)
			}
			if !d.Equal(tt.want.Time) || typ != tt.typ {
				t.Fatalf("GetStart(%q) = %s %s, want %s %s", tt.in, d, typ, tt.want, tt.typ)
			}
		})
	}

	o := DateOptions{}
	if _, _, ok, err := o.GetEnd(); ok || err != nil {
		t.Fatalf("an empty flag must report not set, got %v %v", ok, err)
	}
	o.End = "someday"
	if _, _, _, err := o.GetEnd(); err == nil {
		t.Fatalf("expected an error for an unparseable date")
	}
}

func TestProjectOptionsApplyOnlyChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	o := &ProjectOptions{}
	AddProjectArgs(cmd, o)
	for flag, value := range map[string]string{
		"lead":  "Cleo",
		"area":  "roads",
		"start": "2024-02",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("set %s: %v", flag, err)
		}
	}

	p := model.Project{Name: "Bridge", Lead: "Ana", Comment: "keep", End: model.DayOf(2024, 6, 1)}
	area := func(key string) (string, error) {
		if key != "roads" {
			return "", errors.New("unknown area")
		}
		return "#12AB9F", nil
	}
	if err := o.Apply(&p, area); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.Name != "Bridge" || p.Comment != "keep" {
		t.Fatalf("unchanged flags must not touch the project: %+v", p)
	}
	if p.Lead != "Cleo" || p.Color != "#12AB9F" {
		t.Fatalf("expected lead and area applied: %+v", p)
	}
	if !p.Start.Equal(model.DayOf(2024, 2, 1).Time) || p.StartType != model.DateTypeMonth {
		t.Fatalf("expected a month start, got %s %s", p.Start, p.StartType)
	}
	if !p.End.Equal(model.DayOf(2024, 6, 1).Time) {
		t.Fatalf("end must be kept, got %s", p.End)
	}

	if err := cmd.Flags().Set("area", "nowhere"); err != nil {
		t.Fatalf("set area: %v", err)
	}
	if err := o.Apply(&p, area); err == nil {
		t.Fatalf("expected the area lookup error")
	}
}

func TestEventOptionsApply(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	o := &EventOptions{}
	AddEventArgs(cmd, o)
	AddDetachArg(cmd, o)
	if err := cmd.Flags().Set("symbol", "!"); err != nil {
		t.Fatalf("set symbol: %v", err)
	}
	if err := cmd.Flags().Set("end", "2024-04-05"); err != nil {
		t.Fatalf("set end: %v", err)
	}
	if err := cmd.Flags().Set("detach", "true"); err != nil {
		t.Fatalf("set detach: %v", err)
	}

	e := model.Event{Name: "Launch", ProjectID: "p1", Start: model.DayOf(2024, 4, 1)}
	if err := o.Apply(&e); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if e.Symbol != "warning" {
		t.Fatalf("expected the warning symbol, got %q", e.Symbol)
	}
	if !e.Standalone() {
		t.Fatalf("--detach must clear the project")
	}
	if !e.HasDuration() || e.End.String() != "2024-04-05" {
		t.Fatalf("expected an end date, got %+v", e.End)
	}

	if err := cmd.Flags().Set("symbol", "rocket"); err != nil {
		t.Fatalf("set symbol: %v", err)
	}
	if err := o.Apply(&e); err == nil {
		t.Fatalf("expected an unknown symbol to fail")
	}
}

func TestQueryAndOutput(t *testing.T) {
	q := QueryOptions{Lead: "Ana", Sort: "colour"}
	got, err := q.Query()
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got.Lead != "Ana" || got.Sort != app.SortArea {
		t.Fatalf("unexpected query %+v", got)
	}
	q.Sort = "sideways"
	if _, err := q.Query(); err == nil {
		t.Fatalf("expected an unknown sort key to fail")
	}

	tests := []struct {
		opts   OutputOptions
		format string
		ok     bool
		err    bool
	}{
		{opts: OutputOptions{Format: "text"}},
		{opts: OutputOptions{Format: "YAML"}, format: "yaml", ok: true},
		{opts: OutputOptions{JSON: true, Format: "text"}, format: "json", ok: true},
		{opts: OutputOptions{Format: "xml"}, err: true},
	}
	for _, tt := range tests {
		format, ok, err := tt.opts.Structured()
		if (err != nil) != tt.err || format != tt.format || ok != tt.ok {
			t.Fatalf("%+v: got %q %v %v", tt.opts, format, ok, err)
		}
	}
}

func TestViewOptionsChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "render"}
	o := &ViewOptions{}
	AddViewArgs(cmd, o)
	if o.ScrollSet() || o.CompactSet() {
		t.Fatalf("nothing was set yet")
	}
	if err := cmd.Flags().Set("scroll", "0"); err != nil {
		t.Fatalf("set scroll: %v", err)
	}
	if !o.ScrollSet() {
		t.Fatalf("an explicit zero scroll must count as set")
	}
}
