package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/gesture"
	"tableflip.dev/roadmap/pkg/logging"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/viewport"
)

var (
	ErrNotFound       = errors.New("app: not found")
	ErrNameRequired   = errors.New("app: name is required")
	ErrEndBeforeStart = errors.New("app: end date is before start date")
	ErrInvalidRange   = errors.New("app: invalid timeline range")
	ErrInvalidColor   = errors.New("app: invalid colour")
	ErrDuplicate      = errors.New("app: already exists")
	ErrAreaInUse      = errors.New("app: area is in use")
	ErrStatusInUse    = errors.New("app: status is in use")
	ErrNothingToUndo  = errors.New("app: nothing to undo")
	ErrNotResizable   = errors.New("app: item cannot be resized")
	ErrNoPersistence  = errors.New("app: no persistence configured")
	ErrGestureActive  = errors.New("app: a resize is in progress")
)

// DefaultUndoDepth is how many snapshots Undo can step back through.
const DefaultUndoDepth = 30

// DefaultAutosaveDelay is the quiet period after the last mutation before the
// state is written.
const DefaultAutosaveDelay = 500 * time.Millisecond

// Options configure a Service. Zero values pick the stock defaults.
type Options struct {
	KV            store.KV
	Logger        *zap.Logger
	Defaults      model.State
	Viewport      viewport.Config
	UndoDepth     int
	AutosaveDelay time.Duration
	Locale        string
	Now           func() time.Time
	NewID         func() string
}

// DefaultState is the state of a fresh install on now's date.
func DefaultState(now time.Time) model.State {
	return model.State{
		Range:    model.DefaultRange(now),
		Areas:    model.DefaultAreas(),
		Statuses: model.DefaultStatuses(),
		Labels:   model.DefaultLabels(),
	}
}

// Service owns the live timeline data. Every read and write goes through its
// mutex so a render never observes a half-applied mutation or gesture commit.
type Service struct {
	mu    sync.Mutex
	kv    store.KV
	log   *zap.Logger
	opts  Options
	state model.State
	undo  []model.Snapshot
	seq   int
	dirty bool
	saver *debouncer

	resize     gesture.Engine
	resizeMark int
}

// New returns a Service holding opts.Defaults. Call Load to read persisted
// data.
func New(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.UndoDepth <= 0 {
		opts.UndoDepth = DefaultUndoDepth
	}
	if opts.AutosaveDelay <= 0 {
		opts.AutosaveDelay = DefaultAutosaveDelay
	}
	if opts.Locale == "" {
		opts.Locale = "en"
	}
	if opts.Viewport == (viewport.Config{}) {
		opts.Viewport = viewport.DefaultConfig()
	}
	if opts.Defaults.Range == (model.TimelineRange{}) {
		opts.Defaults = DefaultState(opts.Now())
	}
	if opts.Defaults.Labels == nil {
		opts.Defaults.Labels = model.DefaultLabels()
	}
	s := &Service{
		kv:    opts.KV,
		log:   logging.OrNop(opts.Logger),
		opts:  opts,
		state: opts.Defaults.Clone(),
	}
	s.saver = newDebouncer(opts.AutosaveDelay, s.autosave)
	return s
}

// Load replaces the live state with what the store holds.
func (s *Service) Load(ctx context.Context) error {
	if s.kv == nil {
		return ErrNoPersistence
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Service) loadLocked() error {
	state, found, err := store.LoadState(s.kv, s.opts.Defaults)
	if err != nil {
		return fmt.Errorf("app: load: %w", err)
	}
	undo, err := store.LoadUndo(s.kv)
	if err != nil {
		return fmt.Errorf("app: load undo: %w", err)
	}
	if len(undo) > s.opts.UndoDepth {
		undo = undo[len(undo)-s.opts.UndoDepth:]
	}
	s.state = state
	s.undo = undo
	s.dirty = false
	s.log.Debug("state loaded",
		zap.Bool("found", found),
		zap.Int("projects", len(state.Projects)),
		zap.Int("events", len(state.Events)),
	)
	return nil
}

// Reload re-reads the store after another writer changed it. It does nothing
// and reports false while local changes are unsaved or a resize is active.
func (s *Service) Reload(ctx context.Context) (bool, error) {
	if s.kv == nil {
		return false, ErrNoPersistence
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty || s.resize.Active() {
		return false, nil
	}
	if err := s.loadLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// State returns a deep copy of the live state.
func (s *Service) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Range is the current timeline range.
func (s *Service) Range() model.TimelineRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Range
}

// Labels returns a copy of the label table.
func (s *Service) Labels() model.Labels {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Labels.Merge(nil)
}

// NewViewport returns a viewport over the current range.
func (s *Service) NewViewport(width float64) *viewport.Viewport {
	start, end := s.Range().Bounds()
	return viewport.New(s.opts.Viewport, start, end, width)
}

// Now is the service clock.
func (s *Service) Now() time.Time {
	return s.opts.Now()
}

// Save writes the state immediately.
func (s *Service) Save(ctx context.Context) error {
	s.saver.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// Flush writes pending changes, if any, and cancels the autosave timer.
func (s *Service) Flush() error {
	s.saver.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	return s.saveLocked()
}

// Dirty reports whether changes are waiting for the autosave.
func (s *Service) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Service) autosave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return
	}
	if err := s.saveLocked(); err != nil {
		s.log.Error("autosave failed", zap.Error(err))
		return
	}
	s.log.Debug("autosave flushed")
}

func (s *Service) saveLocked() error {
	if s.kv == nil {
		return ErrNoPersistence
	}
	if err := store.SaveState(s.kv, s.state); err != nil {
		return fmt.Errorf("app: save: %w", err)
	}
	if err := store.SaveUndo(s.kv, s.undo); err != nil {
		return fmt.Errorf("app: save undo: %w", err)
	}
	s.dirty = false
	return nil
}

// changed marks the state dirty and (re)arms the autosave timer.
func (s *Service) changed() {
	s.dirty = true
	if s.kv != nil {
		s.saver.Trigger()
	}
}

func (s *Service) pushUndo() {
	s.undo = append(s.undo, s.state.Snapshot())
	if len(s.undo) > s.opts.UndoDepth {
		s.undo = s.undo[len(s.undo)-s.opts.UndoDepth:]
	}
	s.seq++
}

// Undo restores the project and event collections from before the last
// mutation.
func (s *Service) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resize.Cancel() {
		s.dropGestureUndo()
	}
	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.seq++
	s.state.Projects = model.CloneProjects(last.Projects)
	s.state.Events = model.CloneEvents(last.Events)
	s.changed()
	s.log.Info("undo applied", zap.Int("remaining", len(s.undo)))
	return nil
}

// UndoDepth is the number of snapshots available to Undo.
func (s *Service) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}

// Close flushes pending changes.
func (s *Service) Close() error {
	return s.Flush()
}
