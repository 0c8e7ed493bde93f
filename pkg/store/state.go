package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/roadmap/pkg/model"
)

const bucket = "timeline"

// Keys of the persisted collections.
var (
	KeyRange    = keyFor(bucket, "range")
	KeyAreas    = keyFor(bucket, "areas")
	KeyStatuses = keyFor(bucket, "statuses")
	KeyProjects = keyFor(bucket, "projects")
	KeyEvents   = keyFor(bucket, "events")
	KeyLabels   = keyFor(bucket, "labels")
	KeyUndo     = keyFor(bucket, "undo")
)

// StateKeys lists every key written by SaveState.
func StateKeys() []string {
	return []string{KeyRange, KeyAreas, KeyStatuses, KeyProjects, KeyEvents, KeyLabels}
}

// LoadState reads each collection from kv, keeping the value from defaults
// for any key that was never written. The bool reports whether any project
// or event data was present.
func LoadState(kv KV, defaults model.State) (model.State, bool, error) {
	s := defaults.Clone()
	found := false
	load := func(key string, into interface{}) (bool, error) {
		data, err := kv.Get(key)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if err := json.Unmarshal(data, into); err != nil {
			return false, fmt.Errorf("store: decode %s: %w", key, err)
		}
		return true, nil
	}

	if _, err := load(KeyRange, &s.Range); err != nil {
		return defaults, false, err
	}
	if _, err := load(KeyAreas, &s.Areas); err != nil {
		return defaults, false, err
	}
	if _, err := load(KeyStatuses, &s.Statuses); err != nil {
		return defaults, false, err
	}
	var labels model.Labels
	if ok, err := load(KeyLabels, &labels); err != nil {
		return defaults, false, err
	} else if ok {
		s.Labels = s.Labels.Merge(labels)
	}
	for _, c := range []struct {
		key  string
		into interface{}
	}{{KeyProjects, &s.Projects}, {KeyEvents, &s.Events}} {
		ok, err := load(c.key, c.into)
		if err != nil {
			return defaults, false, err
		}
		found = found || ok
	}
	return s, found, nil
}

// SaveState writes every collection of s.
func SaveState(kv KV, s model.State) error {
	projects, events := s.Projects, s.Events
	if projects == nil {
		projects = []model.Project{}
	}
	if events == nil {
		events = []model.Event{}
	}
	for _, c := range []struct {
		key   string
		value interface{}
	}{
		{KeyRange, s.Range},
		{KeyAreas, s.Areas},
		{KeyStatuses, s.Statuses},
		{KeyProjects, projects},
		{KeyEvents, events},
		{KeyLabels, s.Labels},
	} {
		data, err := json.Marshal(c.value)
		if err != nil {
			return fmt.Errorf("store: encode %s: %w", c.key, err)
		}
		if err := kv.Put(c.key, data); err != nil {
			return err
		}
	}
	return nil
}

// LoadUndo reads the persisted undo stack, oldest first.
func LoadUndo(kv KV) ([]model.Snapshot, error) {
	data, err := kv.Get(KeyUndo)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stack []model.Snapshot
	if err := json.Unmarshal(data, &stack); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", KeyUndo, err)
	}
	return stack, nil
}

// SaveUndo writes the undo stack.
func SaveUndo(kv KV, stack []model.Snapshot) error {
	if stack == nil {
		stack = []model.Snapshot{}
	}
	data, err := json.Marshal(stack)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", KeyUndo, err)
	}
	return kv.Put(KeyUndo, data)
}
