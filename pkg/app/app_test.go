package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tableflip.dev/roadmap/pkg/gesture"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/timeutil"
)

func testNow() time.Time {
	return time.Date(2024, 5, 5, 9, 0, 0, 0, time.Local)
}

func newTestService(t *testing.T, tweak ...func(*Options)) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	n := 0
	opts := Options{
		KV:  mem,
		Now: testNow,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Defaults: model.State{
			Range:    model.TimelineRange{StartYear: 2024, EndYear: 2025},
			Areas:    model.DefaultAreas(),
			Statuses: model.DefaultStatuses(),
			Labels:   model.DefaultLabels(),
		},
		AutosaveDelay: time.Hour,
	}
	for _, fn := range tweak {
		fn(&opts)
	}
	s := New(opts)
	t.Cleanup(func() { s.saver.Stop() })
	return s, mem
}

func day(y int, m time.Month, d int) model.Day {
	return model.DayOf(y, m, d)
}

func mustProject(t *testing.T, s *Service, p model.Project) model.Project {
	t.Helper()
	out, err := s.AddProject(p)
	if err != nil {
		t.Fatalf("add project %q: %v", p.Name, err)
	}
	return out
}

func mustEvent(t *testing.T, s *Service, e model.Event) model.Event {
	t.Helper()
	out, err := s.AddEvent(e)
	if err != nil {
		t.Fatalf("add event %q: %v", e.Name, err)
	}
	return out
}

func TestProjectDefaults(t *testing.T) {
	s, _ := newTestService(t)
	p := mustProject(t, s, model.Project{Name: "  Bridge ", Start: day(2024, 1, 1), End: day(2024, 3, 1)})
	if p.ID != "id-1" || p.Name != "Bridge" {
		t.Fatalf("unexpected project %+v", p)
	}
	if p.Status != "early" || p.Color != "#BA4A71" || p.StartType != model.DateTypeDate {
		t.Fatalf("expected first status, first area colour and date type, got %+v", p)
	}
	if !s.Dirty() {
		t.Fatalf("mutation must mark the state dirty")
	}
}

func TestProjectValidation(t *testing.T) {
	s, _ := newTestService(t)
	tests := []struct {
		name string
		p    model.Project
		want error
	}{
		{"no name", model.Project{Start: day(2024, 1, 1), End: day(2024, 1, 2)}, ErrNameRequired},
		{"inverted", model.Project{Name: "x", Start: day(2024, 2, 1), End: day(2024, 1, 2)}, ErrEndBeforeStart},
		{"bad colour", model.Project{Name: "x", Start: day(2024, 1, 1), End: day(2024, 1, 2), Color: "#zzz"}, ErrInvalidColor},
	}
	for _, tt := range tests {
		if _, err := s.AddProject(tt.p); !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
	if s.UndoDepth() != 0 {
		t.Fatalf("rejected mutations must not push undo snapshots")
	}
	if _, err := s.UpdateProject(model.Project{ID: "nope", Name: "x", Start: day(2024, 1, 1), End: day(2024, 1, 1)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProjectDetachesEvents(t *testing.T) {
	s, _ := newTestService(t)
	p := mustProject(t, s, model.Project{Name: "Bridge", Start: day(2024, 1, 1), End: day(2024, 3, 1)})
	e := mustEvent(t, s, model.Event{Name: "Kickoff", Start: day(2024, 1, 10), ProjectID: p.ID})
	if err := s.DeleteProject(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.Event(e.ID)
	if err != nil {
		t.Fatalf("event must survive its project: %v", err)
	}
	if !got.Standalone() {
		t.Fatalf("expected event detached, got project %q", got.ProjectID)
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, err := s.Project(p.ID); err != nil {
		t.Fatalf("undo must restore the project: %v", err)
	}
	if got, _ := s.Event(e.ID); got.ProjectID != p.ID {
		t.Fatalf("undo must restore the event link")
	}
}

func TestEventValidation(t *testing.T) {
	s, _ := newTestService(t)
	end := day(2024, 1, 1)
	if _, err := s.AddEvent(model.Event{Name: "x", Start: day(2024, 2, 1), End: &end}); !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	if _, err := s.AddEvent(model.Event{Name: "x", Start: day(2024, 2, 1), ProjectID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.AddEvent(model.Event{Name: "x", Start: day(2024, 2, 1), Symbol: "smiley"}); err == nil {
		t.Fatalf("expected unknown symbol error")
	}
	e := mustEvent(t, s, model.Event{Name: "x", Start: day(2024, 2, 1), Symbol: "<>", End: &model.Day{}})
	if e.Symbol != "diamond" || e.End != nil || e.EndType != "" {
		t.Fatalf("expected canonical symbol and no end, got %+v", e)
	}
}

func TestUndoDepth(t *testing.T) {
	s, _ := newTestService(t, func(o *Options) { o.UndoDepth = 3 })
	for i := 0; i < 5; i++ {
		mustProject(t, s, model.Project{Name: fmt.Sprintf("p%d", i), Start: day(2024, 1, 1), End: day(2024, 1, 2)})
	}
	if s.UndoDepth() != 3 {
		t.Fatalf("expected depth 3, got %d", s.UndoDepth())
	}
	for i := 0; i < 3; i++ {
		if err := s.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	if got := len(s.State().Projects); got != 2 {
		t.Fatalf("expected 2 projects left after undoing 3 of 5, got %d", got)
	}
	if err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestAreas(t *testing.T) {
	s, _ := newTestService(t)
	a, err := s.AddArea("Roads", "12ab9f")
	if err != nil {
		t.Fatalf("add area: %v", err)
	}
	if a.Color != "#12AB9F" {
		t.Fatalf("expected normalised colour, got %s", a.Color)
	}
	if _, err := s.AddArea("Dup", "#12ab9f"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if c, err := s.AreaColor("roads"); err != nil || c != "#12AB9F" {
		t.Fatalf("expected lookup by name, got %q %v", c, err)
	}
	if _, err := s.AreaColor("Nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	p := mustProject(t, s, model.Project{Name: "Bridge", Start: day(2024, 1, 1), End: day(2024, 3, 1), Color: "#12ab9f"})
	if err := s.RemoveArea("Roads", false); !errors.Is(err, ErrAreaInUse) {
		t.Fatalf("expected ErrAreaInUse, got %v", err)
	}
	if err := s.RecolorArea("#12AB9F", "#000000"); err != nil {
		t.Fatalf("recolour: %v", err)
	}
	if got, _ := s.Project(p.ID); got.Color != "#000000" {
		t.Fatalf("recolour must move projects along, got %s", got.Color)
	}
	if err := s.RenameArea("#000000", "Streets"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := s.RemoveArea("Streets", true); err != nil {
		t.Fatalf("forced remove: %v", err)
	}
	if got, _ := s.Project(p.ID); got.Color != "#000000" {
		t.Fatalf("forced remove must leave project colours alone")
	}
	if len(s.Areas()) != len(model.DefaultAreas()) {
		t.Fatalf("unexpected area count %d", len(s.Areas()))
	}
}

func TestStatuses(t *testing.T) {
	s, _ := newTestService(t)
	st, err := s.AddStatus("", "On Hold")
	if err != nil || st.ID != "on-hold" {
		t.Fatalf("unexpected status %+v, %v", st, err)
	}
	if err := s.MoveStatus("on-hold", 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := s.Statuses(); got[0].ID != "on-hold" || got[1].ID != "early" || len(got) != 5 {
		t.Fatalf("unexpected order %+v", got)
	}
	mustProject(t, s, model.Project{Name: "Bridge", Status: "on-hold", Start: day(2024, 1, 1), End: day(2024, 3, 1)})
	if err := s.RemoveStatus("on-hold", false); !errors.Is(err, ErrStatusInUse) {
		t.Fatalf("expected ErrStatusInUse, got %v", err)
	}
	if err := s.RenameStatus("on-hold", "Paused"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := s.AddStatus("early", "Again"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestSetRange(t *testing.T) {
	s, _ := newTestService(t)
	if _, err := s.SetRange(2026, 2026); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	r, err := s.SetRange(2020, 2030)
	if err != nil || s.Range() != r {
		t.Fatalf("unexpected range %+v, %v", s.Range(), err)
	}
	if s.UndoDepth() != 0 {
		t.Fatalf("range changes are not part of the undo history")
	}
}

func TestQuery(t *testing.T) {
	s, _ := newTestService(t)
	mustProject(t, s, model.Project{Name: "Zeta", Lead: "bob", Status: "completion", Start: day(2024, 3, 1), End: day(2024, 9, 1), Color: "#31567D"})
	mustProject(t, s, model.Project{Name: "alpha", Status: "early", Start: day(2024, 1, 1), End: day(2024, 12, 1)})
	mustProject(t, s, model.Project{Name: "Mid", Lead: "Ada", Status: "mystery", Start: day(2024, 2, 1), End: day(2024, 4, 1), Comment: "needs Funding"})

	names := func(ps []model.Project) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}
	tests := []struct {
		q    Query
		want []string
	}{
		{Query{}, []string{"Zeta", "alpha", "Mid"}},
		{Query{Sort: SortName}, []string{"alpha", "Mid", "Zeta"}},
		{Query{Sort: SortLead}, []string{"Mid", "Zeta", "alpha"}},
		{Query{Sort: SortStart}, []string{"alpha", "Mid", "Zeta"}},
		{Query{Sort: SortEnd}, []string{"Mid", "Zeta", "alpha"}},
		{Query{Sort: SortStatus}, []string{"alpha", "Zeta", "Mid"}},
		{Query{Sort: SortArea}, []string{"alpha", "Mid", "Zeta"}},
		{Query{Area: "Area B"}, []string{"Zeta"}},
		{Query{Search: "funding"}, []string{"Mid"}},
		{Query{Lead: "bob"}, []string{"Zeta"}},
		{Query{Status: "early"}, []string{"alpha"}},
	}
	for _, tt := range tests {
		got := names(s.Projects(tt.q))
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Fatalf("query %+v: got %v, want %v", tt.q, got, tt.want)
		}
	}
	if leads := s.Leads(); fmt.Sprint(leads) != "[Ada bob]" {
		t.Fatalf("unexpected leads %v", leads)
	}
}

func TestParseSortKey(t *testing.T) {
	if k, err := ParseSortKey("Color"); err != nil || k != SortArea {
		t.Fatalf("expected colour alias, got %q %v", k, err)
	}
	if _, err := ParseSortKey("size"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, mem := newTestService(t)
	p := mustProject(t, s, model.Project{Name: "Bridge", Start: day(2024, 1, 1), End: day(2024, 3, 1)})
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if s.Dirty() {
		t.Fatalf("flush must clear the dirty flag")
	}

	again := New(Options{KV: mem, Now: testNow, Defaults: DefaultState(testNow())})
	if err := again.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := again.Project(p.ID); err != nil {
		t.Fatalf("expected project to persist: %v", err)
	}
	if again.UndoDepth() != 1 {
		t.Fatalf("expected persisted undo stack, got depth %d", again.UndoDepth())
	}
	if again.Range() != (model.TimelineRange{StartYear: 2024, EndYear: 2025}) {
		t.Fatalf("expected persisted range, got %+v", again.Range())
	}
}

func TestAutosaveDebounce(t *testing.T) {
	s, mem := newTestService(t, func(o *Options) { o.AutosaveDelay = 30 * time.Millisecond })
	for i := 0; i < 3; i++ {
		mustProject(t, s, model.Project{Name: "p", Start: day(2024, 1, 1), End: day(2024, 1, 2)})
	}
	if mem.Writes() != 0 {
		t.Fatalf("autosave must wait for the quiet period")
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.Dirty() {
		if time.Now().After(deadline) {
			t.Fatal("autosave never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
	writes := mem.Writes()
	if writes == 0 {
		t.Fatalf("expected a save")
	}
	time.Sleep(60 * time.Millisecond)
	if mem.Writes() != writes {
		t.Fatalf("a burst of changes must save once")
	}
}

func TestReloadSkipsUnsavedChanges(t *testing.T) {
	s, mem := newTestService(t)
	mustProject(t, s, model.Project{Name: "Local", Start: day(2024, 1, 1), End: day(2024, 1, 2)})
	if ok, err := s.Reload(context.Background()); ok || err != nil {
		t.Fatalf("reload must wait for unsaved changes, got %v %v", ok, err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	other := New(Options{KV: mem, Now: testNow})
	if err := other.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	mustProject(t, other, model.Project{Name: "Remote", Start: day(2024, 1, 1), End: day(2024, 1, 2)})
	if err := other.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if ok, err := s.Reload(context.Background()); !ok || err != nil {
		t.Fatalf("expected reload, got %v %v", ok, err)
	}
	if len(s.State().Projects) != 2 {
		t.Fatalf("expected remote project after reload")
	}
}

func TestExportImportReplace(t *testing.T) {
	s, _ := newTestService(t)
	p := mustProject(t, s, model.Project{Name: "Bridge", Start: day(2024, 1, 1), End: day(2024, 3, 1)})
	mustEvent(t, s, model.Event{Name: "Kickoff", Start: day(2024, 1, 10), ProjectID: p.ID})
	doc := s.Export()
	if doc.Version != model.DocumentVersion || !doc.ExportDate.Equal(testNow().UTC()) {
		t.Fatalf("unexpected header %+v", doc)
	}

	fresh, _ := newTestService(t)
	doc.TimelineRange = &model.TimelineRange{StartYear: 2019, EndYear: 2029}
	sum, err := fresh.Import(doc, ImportReplace)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if sum.Projects != 1 || sum.Events != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if fresh.Range().StartYear != 2019 {
		t.Fatalf("replace must adopt the document range")
	}
	if got, err := fresh.Project(p.ID); err != nil || got.Name != "Bridge" {
		t.Fatalf("replace must keep ids: %v", err)
	}
	if err := fresh.Undo(); err != nil || len(fresh.State().Projects) != 0 {
		t.Fatalf("import must be undoable")
	}
}

func TestImportMerge(t *testing.T) {
	s, _ := newTestService(t)
	existing := mustProject(t, s, model.Project{Name: "Existing", Start: day(2024, 1, 1), End: day(2024, 3, 1)})
	doc := model.Document{
		Areas:    []model.Area{{Name: "Dup", Color: "#BA4A71"}, {Name: "New", Color: "#010203"}},
		Projects: []model.Project{{ID: "x1", Name: "Imported", Start: day(2024, 2, 1), End: day(2024, 4, 1)}},
		Events: []model.Event{
			{ID: "ev1", Name: "Attached", Start: day(2024, 2, 5), ProjectID: "x1"},
			{ID: "ev2", Name: "Dangling", Start: day(2024, 2, 6), ProjectID: "gone"},
			{ID: "ev3", Name: "Local", Start: day(2024, 2, 7), ProjectID: existing.ID},
		},
	}
	sum, err := s.Import(doc, ImportMerge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if sum.Areas != 1 || sum.Projects != 1 || sum.Events != 3 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	st := s.State()
	if len(st.Projects) != 2 || st.Projects[1].ID == "x1" {
		t.Fatalf("merged projects need fresh ids: %+v", st.Projects)
	}
	newID := st.Projects[1].ID
	byName := map[string]model.Event{}
	for _, e := range st.Events {
		byName[e.Name] = e
		if e.ID == "ev1" || e.ID == "ev2" || e.ID == "ev3" {
			t.Fatalf("merged events need fresh ids")
		}
	}
	if byName["Attached"].ProjectID != newID {
		t.Fatalf("expected reference remapped to %s, got %s", newID, byName["Attached"].ProjectID)
	}
	if !byName["Dangling"].Standalone() {
		t.Fatalf("dangling references must be detached")
	}
	if byName["Local"].ProjectID != existing.ID {
		t.Fatalf("references to existing projects must be kept")
	}
}

func TestImportRejectsInvertedDates(t *testing.T) {
	s, _ := newTestService(t)
	doc := model.Document{Projects: []model.Project{{ID: "x", Name: "Bad", Start: day(2024, 3, 1), End: day(2024, 1, 1)}}}
	if _, err := s.Import(doc, ImportReplace); !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	if s.UndoDepth() != 0 {
		t.Fatalf("rejected import must not push undo")
	}
}

func TestDefaultsAreIndependent(t *testing.T) {
	a, _ := newTestService(t)
	b, _ := newTestService(t)
	if _, err := a.AddArea("Mine", "#111111"); err != nil {
		t.Fatalf("add area: %v", err)
	}
	if len(b.Areas()) != len(model.DefaultAreas()) {
		t.Fatalf("services must not share default slices")
	}
	if timeutil.FormatDate(a.Now()) != "2024-05-05" {
		t.Fatalf("expected injected clock")
	}
}

func TestEventsListing(t *testing.T) {
	s, _ := newTestService(t)
	p := mustProject(t, s, model.Project{Name: "Bridge", Start: day(2024, 1, 1), End: day(2024, 3, 1)})
	mustEvent(t, s, model.Event{Name: "a", Start: day(2024, 1, 10), ProjectID: p.ID})
	mustEvent(t, s, model.Event{Name: "b", Start: day(2024, 1, 11)})
	none := ""
	if len(s.Events(nil)) != 2 || len(s.Events(&p.ID)) != 1 || len(s.Events(&none)) != 1 {
		t.Fatalf("unexpected event listing")
	}
}

// resizeFixture places a project 100px in and 200px wide at the default scale.
func resizeFixture(t *testing.T) (*Service, model.Project) {
	t.Helper()
	s, _ := newTestService(t)
	start := day(2024, 1, 26)
	p := mustProject(t, s, model.Project{Name: "Bridge", Status: "implementation", Start: start, End: start.AddDays(50), StartType: model.DateTypeMonth})
	return s, p
}

func TestResizeCommit(t *testing.T) {
	s, p := resizeFixture(t)
	v := s.NewViewport(1200)
	target := gesture.Target{Kind: gesture.KindProject, ID: p.ID}
	left, width, err := s.Geometry(v, target)
	if err != nil || left != 100 || width != 200 {
		t.Fatalf("unexpected geometry %v %v %v", left, width, err)
	}
	before := s.UndoDepth()
	if _, err := s.BeginResize(v, target, gesture.SideRight, 300); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.BeginResize(v, target, gesture.SideLeft, 100); !errors.Is(err, ErrGestureActive) {
		t.Fatalf("expected ErrGestureActive, got %v", err)
	}
	r, err := s.MoveResize(110)
	if err != nil || r.Width != 20 {
		t.Fatalf("expected clamped width 20, got %+v %v", r, err)
	}

	f := s.Render(v, RenderOptions{})
	if got := f.Sections[0].Rows[0].Width; got != 20 {
		t.Fatalf("render must show the tentative width, got %v", got)
	}
	if stored, _ := s.Project(p.ID); !stored.End.Equal(day(2024, 3, 16).Time) {
		t.Fatalf("model must not change before commit, got %s", stored.End)
	}

	c, applied, err := s.CommitResize(v)
	if err != nil || !applied {
		t.Fatalf("commit: %v %v", applied, err)
	}
	if c.Days() != 5 {
		t.Fatalf("expected 5 days, got %d", c.Days())
	}
	got, _ := s.Project(p.ID)
	if !got.Start.Equal(day(2024, 1, 26).Time) || !got.End.Equal(day(2024, 1, 31).Time) {
		t.Fatalf("unexpected dates %s..%s", got.Start, got.End)
	}
	if got.StartType != model.DateTypeDate {
		t.Fatalf("committed dates are exact, got %s", got.StartType)
	}
	if s.UndoDepth() != before+1 {
		t.Fatalf("a gesture is one undo step")
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got, _ := s.Project(p.ID); !got.End.Equal(day(2024, 3, 16).Time) {
		t.Fatalf("undo must restore the end date, got %s", got.End)
	}
}

func TestResizeCancel(t *testing.T) {
	s, p := resizeFixture(t)
	v := s.NewViewport(1200)
	before := s.UndoDepth()
	if _, err := s.BeginResize(v, gesture.Target{Kind: gesture.KindProject, ID: p.ID}, gesture.SideLeft, 100); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.MoveResize(60); err != nil {
		t.Fatalf("move: %v", err)
	}
	if !s.CancelResize() {
		t.Fatalf("expected an active resize to cancel")
	}
	if s.UndoDepth() != before {
		t.Fatalf("cancel must drop the gesture snapshot")
	}
	if got, _ := s.Project(p.ID); !got.Start.Equal(p.Start.Time) {
		t.Fatalf("cancel must not touch the model")
	}
	if s.CancelResize() {
		t.Fatalf("nothing left to cancel")
	}
	if _, _, err := s.CommitResize(v); !errors.Is(err, gesture.ErrIdle) {
		t.Fatalf("expected ErrIdle, got %v", err)
	}
}

func TestResizeDiscardedWhenItemDeleted(t *testing.T) {
	s, p := resizeFixture(t)
	v := s.NewViewport(1200)
	if _, err := s.BeginResize(v, gesture.Target{Kind: gesture.KindProject, ID: p.ID}, gesture.SideRight, 300); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.DeleteProject(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	depth := s.UndoDepth()
	_, applied, err := s.CommitResize(v)
	if err != nil || applied {
		t.Fatalf("expected discarded commit, got %v %v", applied, err)
	}
	if s.UndoDepth() != depth {
		t.Fatalf("discard must not pop snapshots pushed after the gesture began")
	}
}

func TestResizePointEvent(t *testing.T) {
	s, _ := newTestService(t)
	e := mustEvent(t, s, model.Event{Name: "Kickoff", Start: day(2024, 2, 1)})
	v := s.NewViewport(1200)
	if _, err := s.BeginResize(v, gesture.Target{Kind: gesture.KindEvent, ID: e.ID}, gesture.SideRight, 0); !errors.Is(err, ErrNotResizable) {
		t.Fatalf("expected ErrNotResizable, got %v", err)
	}
}

func TestResizeUntouchedLeavesDates(t *testing.T) {
	s, _ := newTestService(t)
	end := day(2024, 2, 2)
	e := mustEvent(t, s, model.Event{Name: "Pour", Start: day(2024, 2, 1), End: &end, EndType: model.DateTypeWeek})
	v := s.NewViewport(1200)
	target := gesture.Target{Kind: gesture.KindEvent, ID: e.ID}
	left, width, err := s.Geometry(v, target)
	if err != nil || width != 4 {
		t.Fatalf("expected the one day span at 4px, got %v %v", width, err)
	}
	depth := s.UndoDepth()
	if _, err := s.BeginResize(v, target, gesture.SideRight, left+width); err != nil {
		t.Fatalf("begin: %v", err)
	}
	c, applied, err := s.CommitResize(v)
	if err != nil || applied || c.Moved {
		t.Fatalf("a release without moving must not apply, got %+v %v %v", c, applied, err)
	}
	got, _ := s.Event(e.ID)
	if !got.Start.Equal(day(2024, 2, 1).Time) || !got.End.Equal(end.Time) || got.EndType != model.DateTypeWeek {
		t.Fatalf("untouched gesture changed the event: %s..%s %s", got.Start, got.End, got.EndType)
	}
	if s.UndoDepth() != depth {
		t.Fatalf("an untouched gesture must not leave an undo step")
	}

	// Grows from the true one day span, clamped to the 20px minimum.
	if _, err := s.BeginResize(v, target, gesture.SideRight, left+width); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.MoveResize(left + width + 4); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, applied, err := s.CommitResize(v); err != nil || !applied {
		t.Fatalf("commit: %v %v", applied, err)
	}
	if got, _ := s.Event(e.ID); !got.End.Equal(day(2024, 2, 6).Time) {
		t.Fatalf("expected the minimum 5 day span, got %s", got.End)
	}
}

func TestResizeLeftKeepsEnd(t *testing.T) {
	s, p := resizeFixture(t)
	v := s.NewViewport(1200)
	if _, err := s.BeginResize(v, gesture.Target{Kind: gesture.KindProject, ID: p.ID}, gesture.SideLeft, 100); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.MoveResize(102); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, applied, err := s.CommitResize(v); err != nil || !applied {
		t.Fatalf("commit: %v %v", applied, err)
	}
	got, _ := s.Project(p.ID)
	if !got.Start.Equal(day(2024, 1, 27).Time) || !got.End.Equal(day(2024, 3, 16).Time) {
		t.Fatalf("a left handle drag must keep the end, got %s..%s", got.Start, got.End)
	}
}

func TestUndoDuringResize(t *testing.T) {
	s, p := resizeFixture(t)
	p.Name = "Renamed"
	if _, err := s.UpdateProject(p); err != nil {
		t.Fatalf("update: %v", err)
	}
	depth := s.UndoDepth()
	v := s.NewViewport(1200)
	if _, err := s.BeginResize(v, gesture.Target{Kind: gesture.KindProject, ID: p.ID}, gesture.SideRight, 300); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, active := s.Resizing(); active {
		t.Fatalf("undo must end the resize")
	}
	if got, _ := s.Project(p.ID); got.Name != "Bridge" {
		t.Fatalf("undo must revert the rename, got %q", got.Name)
	}
	if s.UndoDepth() != depth-1 {
		t.Fatalf("expected one step used, depth %d -> %d", depth, s.UndoDepth())
	}
}

func TestRenderGroupsByStatus(t *testing.T) {
	s, _ := newTestService(t)
	mustProject(t, s, model.Project{Name: "Bridge", Status: "implementation", Start: day(2024, 1, 1), End: day(2024, 3, 1)})
	mustProject(t, s, model.Project{Name: "Road", Status: "early", Start: day(2024, 2, 1), End: day(2024, 4, 1)})
	v := s.NewViewport(1200)

	f := s.Render(v, RenderOptions{Query: Query{Sort: SortStatus}})
	if len(f.Sections) != 2 || f.Sections[0].Key != "early" || f.Sections[1].Key != "implementation" {
		t.Fatalf("unexpected sections %+v", f.Sections)
	}
	if !f.HasToday {
		t.Fatalf("expected today marker inside the range")
	}

	f = s.Render(v, RenderOptions{})
	if len(f.Sections) != 1 || len(f.Sections[0].Rows) != 2 || f.Sections[0].Rows[0].Project.Name != "Bridge" {
		t.Fatalf("ungrouped render must keep stored order, got %+v", f.Sections)
	}
}

func TestReport(t *testing.T) {
	s, _ := newTestService(t)
	bridge := mustProject(t, s, model.Project{Name: "Bridge", Status: "implementation", Start: day(2024, 1, 1), End: day(2024, 3, 1)})
	mustProject(t, s, model.Project{Name: "Road", Status: "early", Start: day(2024, 2, 15), End: day(2024, 4, 1)})
	mustProject(t, s, model.Project{Name: "Old", Status: "early", Start: day(2024, 1, 1), End: day(2024, 1, 20)})
	mustEvent(t, s, model.Event{Name: "Kickoff", Start: day(2024, 1, 10), ProjectID: bridge.ID})
	mustEvent(t, s, model.Event{Name: "Review", Start: day(2024, 2, 10), ProjectID: bridge.ID})
	mustEvent(t, s, model.Event{Name: "Council", Start: day(2024, 2, 20)})

	// Bounds are swapped on purpose.
	r := s.Report(day(2024, 2, 29).Time, day(2024, 2, 1).Time)
	if r.Total != 2 || len(r.Sections) != 2 {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.Sections[0].Status != "early" || r.Sections[0].Items[0].Project.Name != "Road" {
		t.Fatalf("expected early first, got %+v", r.Sections[0])
	}
	impl := r.Sections[1]
	if impl.Label != "Implementation" || len(impl.Items[0].Events) != 1 || impl.Items[0].Events[0].Name != "Review" {
		t.Fatalf("unexpected implementation section %+v", impl)
	}
	if len(r.Standalone) != 1 || r.Standalone[0].Name != "Council" {
		t.Fatalf("unexpected standalone events %+v", r.Standalone)
	}

	sum := s.Summary()
	if sum.Projects != 3 || sum.Events != 3 || sum.Standalone != 1 || sum.ByStatus["Early stage"] != 2 || sum.ByArea["Area A"] != 3 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestFocusEvent(t *testing.T) {
	s, _ := newTestService(t)
	e := mustEvent(t, s, model.Event{Name: "Council", Start: day(2024, 7, 1)})
	v := s.NewViewport(400)
	if err := s.FocusEvent(v, e.ID); err != nil {
		t.Fatalf("focus: %v", err)
	}
	// Jul 1 is day 182 of 2024, 728px at 4px/day.
	if v.Scroll() != 728-200 {
		t.Fatalf("expected event centred, got scroll %v", v.Scroll())
	}
	if err := s.FocusEvent(v, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
