package app

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/roadmap/pkg/model"
)

// SortKey orders project rows.
type SortKey string

const (
	SortNone   SortKey = ""
	SortLead   SortKey = "lead"
	SortArea   SortKey = "area"
	SortName   SortKey = "name"
	SortStart  SortKey = "start"
	SortEnd    SortKey = "end"
	SortStatus SortKey = "status"
)

// SortKeys lists the accepted sort keys.
func SortKeys() []SortKey {
	return []SortKey{SortLead, SortArea, SortName, SortStart, SortEnd, SortStatus}
}

// ParseSortKey accepts any SortKeys value, "color" for area, or "" for none.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return SortNone, nil
	}
	if s == "color" || s == "colour" {
		return SortArea, nil
	}
	for _, k := range SortKeys() {
		if string(k) == s {
			return k, nil
		}
	}
	return SortNone, fmt.Errorf("app: unknown sort key %q", s)
}

// Query filters and orders projects. Empty fields match everything.
type Query struct {
	Lead   string
	Status string
	// Area matches an area colour or name.
	Area   string
	Search string
	Sort   SortKey
}

// Projects returns the projects matching q in q.Sort order.
func (s *Service) Projects(q Query) []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryLocked(q)
}

func (s *Service) queryLocked(q Query) []model.Project {
	area := strings.TrimSpace(q.Area)
	if area != "" {
		if i, err := s.findArea(area); err == nil {
			area = s.state.Areas[i].Color
		}
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	var out []model.Project
	for _, p := range s.state.Projects {
		if q.Lead != "" && p.Lead != q.Lead {
			continue
		}
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if area != "" && !strings.EqualFold(p.Color, area) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Lead), search) &&
			!strings.Contains(strings.ToLower(p.Comment), search) {
			continue
		}
		out = append(out, p)
	}
	s.sortProjects(out, q.Sort)
	return out
}

func (s *Service) collator() *collate.Collator {
	tag, err := language.Parse(s.opts.Locale)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag, collate.IgnoreCase)
}

// sortProjects orders ps stably by key. Projects without a lead sort last,
// projects with an unknown status sort after every known one.
func (s *Service) sortProjects(ps []model.Project, key SortKey) {
	if key == SortNone {
		return
	}
	col := s.collator()
	other := s.state.Labels.Get(model.LabelOtherArea)
	areaName := func(p model.Project) string {
		if name, ok := s.state.AreaName(p.Color); ok {
			return name
		}
		return other
	}
	statusRank := func(p model.Project) int {
		if i := s.state.StatusIndex(p.Status); i >= 0 {
			return i
		}
		return len(s.state.Statuses)
	}
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		switch key {
		case SortLead:
			switch {
			case a.Lead == "" || b.Lead == "":
				return a.Lead != "" && b.Lead == ""
			default:
				return col.CompareString(a.Lead, b.Lead) < 0
			}
		case SortArea:
			return col.CompareString(areaName(a), areaName(b)) < 0
		case SortName:
			return col.CompareString(a.Name, b.Name) < 0
		case SortStart:
			return a.Start.Before(b.Start.Time)
		case SortEnd:
			return a.End.Before(b.End.Time)
		case SortStatus:
			return statusRank(a) < statusRank(b)
		}
		return false
	})
}

// Leads lists the distinct project leads in collation order.
func (s *Service) Leads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	var leads []string
	for _, p := range s.state.Projects {
		if p.Lead == "" {
			continue
		}
		if _, ok := seen[p.Lead]; ok {
			continue
		}
		seen[p.Lead] = struct{}{}
		leads = append(leads, p.Lead)
	}
	col := s.collator()
	col.SortStrings(leads)
	return leads
}
