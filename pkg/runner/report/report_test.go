package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/timeutil"
)

func TestReport(t *testing.T) {
	svc := app.New(app.Options{
		KV:            store.NewMemory(),
		Now:           func() time.Time { return time.Date(2024, 5, 5, 9, 0, 0, 0, time.Local) },
		AutosaveDelay: time.Hour,
	})
	p, err := svc.AddProject(model.Project{Name: "Bridge", Lead: "Ana", Status: "implementation", Start: model.DayOf(2024, 3, 1), End: model.DayOf(2024, 6, 1)})
	if err != nil {
		t.Fatalf("add project: %v", err)
	}
	if _, err := svc.AddProject(model.Project{Name: "Archive", Start: model.DayOf(2022, 1, 1), End: model.DayOf(2022, 2, 1)}); err != nil {
		t.Fatalf("add project: %v", err)
	}
	if _, err := svc.AddEvent(model.Event{Name: "Pour", Symbol: "star", Start: model.DayOf(2024, 4, 10), ProjectID: p.ID}); err != nil {
		t.Fatalf("add event: %v", err)
	}
	if _, err := svc.AddEvent(model.Event{Name: "Offsite", Start: model.DayOf(2024, 4, 20)}); err != nil {
		t.Fatalf("add event: %v", err)
	}

	var out bytes.Buffer
	n := &Report{
		Since:   timeutil.Date(2024, time.April, 1),
		Until:   timeutil.Date(2024, time.April, 30),
		Label:   "1m",
		Out:     &out,
		Service: svc,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	got := out.String()
	for _, want := range []string{"last 1m", "Implementation", "Bridge", "· Ana", "★ Pour", "Events", "Offsite"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in report:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Archive") {
		t.Fatalf("projects outside the window must be left out:\n%s", got)
	}
}
