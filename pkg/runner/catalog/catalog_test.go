package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/store"
)

func newService() *app.Service {
	return app.New(app.Options{
		KV:            store.NewMemory(),
		Now:           func() time.Time { return time.Date(2024, 5, 5, 9, 0, 0, 0, time.Local) },
		AutosaveDelay: time.Hour,
	})
}

func TestAreas(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	var out bytes.Buffer
	run := func(op AreaOp, key, value string, force bool) error {
		out.Reset()
		n := &Areas{Op: op, Key: key, Value: value, Force: force, Out: &out, Profile: termenv.Ascii, Service: svc}
		return n.Do(ctx)
	}

	if err := run(AreaAdd, "Roads", "12ab9f", false); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out.String(), "Roads") {
		t.Fatalf("expected the new area listed:\n%s", out.String())
	}
	if err := run(AreaRename, "#12AB9F", "Highways", false); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := run(AreaRecolor, "Highways", "#000000", false); err != nil {
		t.Fatalf("recolor: %v", err)
	}
	if c, err := svc.AreaColor("Highways"); err != nil || c != "#000000" {
		t.Fatalf("expected #000000, got %q %v", c, err)
	}

	if _, err := svc.AddProject(model.Project{Name: "Bridge", Color: "#000000", Start: model.DayOf(2024, 1, 1), End: model.DayOf(2024, 2, 1)}); err != nil {
		t.Fatalf("add project: %v", err)
	}
	if err := run(AreaRemove, "Highways", "", false); !errors.Is(err, app.ErrAreaInUse) {
		t.Fatalf("expected ErrAreaInUse, got %v", err)
	}
	if err := run(AreaRemove, "Highways", "", true); err != nil {
		t.Fatalf("forced remove: %v", err)
	}

	out.Reset()
	list := &Areas{Op: AreaList, Format: "json", Out: &out, Service: svc}
	if err := list.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	var areas []model.Area
	if err := json.Unmarshal(out.Bytes(), &areas); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(areas) != len(model.DefaultAreas()) {
		t.Fatalf("expected the default palette back, got %+v", areas)
	}
}

func TestStatuses(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	var out bytes.Buffer
	run := func(n Statuses) error {
		out.Reset()
		n.Out, n.Service = &out, svc
		return n.Do(ctx)
	}

	if err := run(Statuses{Op: StatusAdd, Name: "On Hold"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := run(Statuses{Op: StatusMove, ID: "on-hold", Position: 0}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := svc.Statuses()[0].ID; got != "on-hold" {
		t.Fatalf("expected on-hold first, got %q", got)
	}
	if err := run(Statuses{Op: StatusRename, ID: "on-hold", Name: "Paused"}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if !strings.Contains(out.String(), "Paused") {
		t.Fatalf("expected the renamed status listed:\n%s", out.String())
	}
	if err := run(Statuses{Op: StatusRemove, ID: "missing"}); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := run(Statuses{Op: StatusRemove, ID: "on-hold"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(svc.Statuses()) != len(model.DefaultStatuses()) {
		t.Fatalf("expected the default statuses back")
	}
}

func TestRange(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	var out bytes.Buffer

	n := &Range{Start: 2023, End: 2026, Out: &out, Service: svc}
	if err := n.Do(ctx); err != nil {
		t.Fatalf("range: %v", err)
	}
	if r := svc.Range(); r.StartYear != 2023 || r.EndYear != 2026 {
		t.Fatalf("unexpected range %+v", r)
	}
	if !strings.Contains(out.String(), "1 Jan 2027") {
		t.Fatalf("expected the exclusive end date:\n%s", out.String())
	}

	n = &Range{End: 2020, Out: &out, Service: svc}
	if err := n.Do(ctx); !errors.Is(err, app.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
