package app

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/model"
)

// normalizeColor parses any hex colour and returns it as upper-case #RRGGBB.
func normalizeColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c != "" && !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	parsed, err := colorful.Hex(c)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	return strings.ToUpper(parsed.Hex()), nil
}

// Areas returns the area list.
func (s *Service) Areas() []model.Area {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Area(nil), s.state.Areas...)
}

// AddArea appends a new area. Colours must be unique.
func (s *Service) AddArea(name, color string) (model.Area, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Area{}, ErrNameRequired
	}
	c, err := normalizeColor(color)
	if err != nil {
		return model.Area{}, err
	}
	if s.areaIndex(c) >= 0 {
		return model.Area{}, fmt.Errorf("%w: area colour %s", ErrDuplicate, c)
	}
	a := model.Area{Name: name, Color: c}
	s.state.Areas = append(s.state.Areas, a)
	s.changed()
	s.log.Info("area added", zap.String("name", name), zap.String("color", c))
	return a, nil
}

// RenameArea changes the name of the area with colour color.
func (s *Service) RenameArea(color, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	i, err := s.findArea(color)
	if err != nil {
		return err
	}
	s.state.Areas[i].Name = name
	s.changed()
	return nil
}

// RecolorArea moves an area, and every project using it, to a new colour.
func (s *Service) RecolorArea(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.findArea(from)
	if err != nil {
		return err
	}
	c, err := normalizeColor(to)
	if err != nil {
		return err
	}
	old := s.state.Areas[i].Color
	if c == old {
		return nil
	}
	if s.areaIndex(c) >= 0 {
		return fmt.Errorf("%w: area colour %s", ErrDuplicate, c)
	}
	s.pushUndo()
	s.state.Areas[i].Color = c
	moved := 0
	for j := range s.state.Projects {
		if s.state.Projects[j].Color == old {
			s.state.Projects[j].Color = c
			moved++
		}
	}
	s.changed()
	s.log.Info("area recoloured", zap.String("from", old), zap.String("to", c), zap.Int("projects", moved))
	return nil
}

// RemoveArea deletes an area. An area still used by projects is only removed
// when force is set; those projects keep their colour.
func (s *Service) RemoveArea(color string, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.findArea(color)
	if err != nil {
		return err
	}
	c := s.state.Areas[i].Color
	used := 0
	for _, p := range s.state.Projects {
		if p.Color == c {
			used++
		}
	}
	if used > 0 && !force {
		return fmt.Errorf("%w: %d projects use %s", ErrAreaInUse, used, s.state.Areas[i].Name)
	}
	s.state.Areas = append(s.state.Areas[:i:i], s.state.Areas[i+1:]...)
	s.changed()
	s.log.Info("area removed", zap.String("color", c), zap.Int("projects", used))
	return nil
}

// findArea resolves an area by colour or, failing that, by name.
func (s *Service) findArea(key string) (int, error) {
	if c, err := normalizeColor(key); err == nil {
		if i := s.areaIndex(c); i >= 0 {
			return i, nil
		}
	}
	for i, a := range s.state.Areas {
		if strings.EqualFold(a.Name, strings.TrimSpace(key)) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: area %q", ErrNotFound, key)
}

// AreaColor resolves an area name or colour to the area's colour.
func (s *Service) AreaColor(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.findArea(key)
	if err != nil {
		return "", err
	}
	return s.state.Areas[i].Color, nil
}

func (s *Service) areaIndex(color string) int {
	for i, a := range s.state.Areas {
		if strings.EqualFold(a.Color, color) {
			return i
		}
	}
	return -1
}

// Statuses returns the ordered status list.
func (s *Service) Statuses() []model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Status(nil), s.state.Statuses...)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// AddStatus appends a status. An empty id is derived from the name.
func (s *Service) AddStatus(id, name string) (model.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Status{}, ErrNameRequired
	}
	id = strings.TrimSpace(id)
	if id == "" {
		id = slug(name)
	}
	if id == "" {
		return model.Status{}, fmt.Errorf("app: cannot derive a status id from %q", name)
	}
	if s.state.StatusIndex(id) >= 0 {
		return model.Status{}, fmt.Errorf("%w: status %q", ErrDuplicate, id)
	}
	st := model.Status{ID: id, Name: name}
	s.state.Statuses = append(s.state.Statuses, st)
	s.changed()
	s.log.Info("status added", zap.String("id", id))
	return st, nil
}

// RenameStatus changes a status's display name.
func (s *Service) RenameStatus(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	i := s.state.StatusIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: status %q", ErrNotFound, id)
	}
	s.state.Statuses[i].Name = name
	s.changed()
	return nil
}

// MoveStatus moves a status to position to, clamped to the list.
func (s *Service) MoveStatus(id string, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.StatusIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: status %q", ErrNotFound, id)
	}
	if to < 0 {
		to = 0
	}
	if to >= len(s.state.Statuses) {
		to = len(s.state.Statuses) - 1
	}
	st := s.state.Statuses[i]
	rest := append(s.state.Statuses[:i:i], s.state.Statuses[i+1:]...)
	out := make([]model.Status, 0, len(s.state.Statuses))
	out = append(out, rest[:to]...)
	out = append(out, st)
	out = append(out, rest[to:]...)
	s.state.Statuses = out
	s.changed()
	return nil
}

// RemoveStatus deletes a status. A status still used by projects is only
// removed when force is set.
func (s *Service) RemoveStatus(id string, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.StatusIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: status %q", ErrNotFound, id)
	}
	used := 0
	for _, p := range s.state.Projects {
		if p.Status == id {
			used++
		}
	}
	if used > 0 && !force {
		return fmt.Errorf("%w: %d projects have status %q", ErrStatusInUse, used, id)
	}
	s.state.Statuses = append(s.state.Statuses[:i:i], s.state.Statuses[i+1:]...)
	s.changed()
	return nil
}

// SetRange changes the timeline bounds.
func (s *Service) SetRange(startYear, endYear int) (model.TimelineRange, error) {
	r := model.TimelineRange{StartYear: startYear, EndYear: endYear}
	if err := r.Validate(); err != nil {
		return model.TimelineRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Range = r
	s.changed()
	s.log.Info("range updated", zap.Int("start", startYear), zap.Int("end", endYear))
	return r, nil
}

// SetLabel overrides one display label. An empty value restores the default.
func (s *Service) SetLabel(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		if def, ok := model.DefaultLabels()[key]; ok {
			s.state.Labels[key] = def
		} else {
			delete(s.state.Labels, key)
		}
	} else {
		s.state.Labels[key] = value
	}
	s.changed()
}
