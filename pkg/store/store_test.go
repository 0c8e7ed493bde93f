package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"tableflip.dev/roadmap/pkg/model"
)

func testState() model.State {
	end := model.DayOf(2024, 2, 1)
	return model.State{
		Range:    model.TimelineRange{StartYear: 2023, EndYear: 2026},
		Areas:    model.DefaultAreas(),
		Statuses: model.DefaultStatuses(),
		Projects: []model.Project{{ID: "p1", Name: "Bridge", Start: model.DayOf(2024, 1, 1), End: model.DayOf(2024, 6, 30), Color: "#31567D"}},
		Events:   []model.Event{{ID: "e1", Name: "Kickoff", Start: model.DayOf(2024, 1, 10), End: &end, ProjectID: "p1"}},
		Labels:   model.Labels{"week.short": "V"},
	}
}

func TestDiskvKV(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := p.Get(KeyProjects); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := p.Put(KeyProjects, []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "timeline", "projects")); err != nil {
		t.Fatalf("expected bucket layout on disk: %v", err)
	}
	got, err := p.Get(KeyProjects)
	if err != nil || string(got) != `[]` {
		t.Fatalf("get = %q, %v", got, err)
	}
	if keys := p.Keys(context.Background()); !reflect.DeepEqual(keys, []string{KeyProjects}) {
		t.Fatalf("unexpected keys %v", keys)
	}
	if err := p.Delete(KeyProjects); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := p.Delete(KeyProjects); err != nil {
		t.Fatalf("deleting a missing key must be a no-op: %v", err)
	}
	if err := p.Put("nodash", nil); err == nil {
		t.Fatalf("expected malformed key error")
	}
}

func TestStateRoundTrip(t *testing.T) {
	for name, kv := range map[string]func(t *testing.T) KV{
		"memory": func(*testing.T) KV { return NewMemory() },
		"diskv": func(t *testing.T) KV {
			p, err := Load(testConfig{path: t.TempDir()})
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			return p
		},
	} {
		t.Run(name, func(t *testing.T) {
			store := kv(t)
			want := testState()
			if err := SaveState(store, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			defaults := model.State{Range: model.TimelineRange{StartYear: 2000, EndYear: 2001}, Labels: model.DefaultLabels()}
			got, found, err := LoadState(store, defaults)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !found {
				t.Fatalf("expected stored data to be reported")
			}
			if got.Range != want.Range || !reflect.DeepEqual(got.Projects, want.Projects) || !reflect.DeepEqual(got.Events, want.Events) {
				t.Fatalf("state differs after round trip:\n got %+v\nwant %+v", got, want)
			}
			if got.Labels.Get("week.short") != "V" || got.Labels.Get("week.prefix") != "Week" {
				t.Fatalf("stored labels must overlay defaults, got %v", got.Labels)
			}
		})
	}
}

func TestLoadStateDefaults(t *testing.T) {
	defaults := testState()
	got, found, err := LoadState(NewMemory(), defaults)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("empty store must not report data")
	}
	if !reflect.DeepEqual(got, defaults) {
		t.Fatalf("expected defaults back")
	}
}

func TestLoadStateCorrupt(t *testing.T) {
	m := NewMemory()
	_ = m.Put(KeyProjects, []byte(`{not json`))
	if _, _, err := LoadState(m, testState()); err == nil || !strings.Contains(err.Error(), KeyProjects) {
		t.Fatalf("expected decode error naming the key, got %v", err)
	}
}

func TestUndoRoundTrip(t *testing.T) {
	m := NewMemory()
	stack, err := LoadUndo(m)
	if err != nil || stack != nil {
		t.Fatalf("expected empty stack, got %v, %v", stack, err)
	}
	want := []model.Snapshot{testState().Snapshot(), {Projects: []model.Project{}, Events: []model.Event{}}}
	if err := SaveUndo(m, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadUndo(m)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || !reflect.DeepEqual(got[0], want[0]) {
		t.Fatalf("unexpected stack %+v", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	doc := testState().Document(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	for _, f := range []Format{FormatJSON, FormatYAML} {
		data, err := EncodeSnapshot(doc, f)
		if err != nil {
			t.Fatalf("%s encode: %v", f, err)
		}
		if !strings.Contains(string(data), "2024-01-10") {
			t.Fatalf("%s: dates must be written as calendar days:\n%s", f, data)
		}
		got, err := DecodeSnapshot(data, f)
		if err != nil {
			t.Fatalf("%s decode: %v", f, err)
		}
		if !reflect.DeepEqual(got.Projects, doc.Projects) || !reflect.DeepEqual(got.Events, doc.Events) {
			t.Fatalf("%s: snapshot differs after round trip", f)
		}
		if got.Version != model.DocumentVersion || *got.TimelineRange != *doc.TimelineRange {
			t.Fatalf("%s: header differs: %+v", f, got)
		}
	}
}

func TestDecodeSnapshotRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		f    Format
	}{
		{"missing events", `{"projects": []}`, FormatJSON},
		{"missing projects", "events: []\n", FormatYAML},
		{"not json", `projects`, FormatJSON},
		{"bad range", `{"projects": [], "events": [], "timelineRange": {"startYear": 2025, "endYear": 2020}}`, FormatJSON},
		{"bad date", `{"projects": [{"id": "p", "start": "soon"}], "events": []}`, FormatJSON},
	}
	for _, tt := range tests {
		if _, err := DecodeSnapshot([]byte(tt.data), tt.f); !errors.Is(err, ErrInvalidSnapshot) {
			t.Fatalf("%s: expected ErrInvalidSnapshot, got %v", tt.name, err)
		}
	}
}

func TestFormats(t *testing.T) {
	if FormatForPath("out.YML") != FormatYAML || FormatForPath("out.json") != FormatJSON || FormatForPath("out") != FormatJSON {
		t.Fatalf("unexpected format detection")
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}
