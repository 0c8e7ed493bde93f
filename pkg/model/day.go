package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/roadmap/pkg/timeutil"
)

// Day is a calendar date with no time of day, held as local midnight and
// persisted as "YYYY-MM-DD".
type Day struct {
	time.Time
}

// NewDay truncates t to its local calendar day.
func NewDay(t time.Time) Day {
	return Day{Time: timeutil.Midnight(t)}
}

// DayOf builds a Day from its components.
func DayOf(year int, month time.Month, day int) Day {
	return Day{Time: timeutil.Date(year, month, day)}
}

// ParseDay parses a persisted date string.
func ParseDay(s string) (Day, error) {
	t, err := timeutil.ParseDate(s)
	if err != nil {
		return Day{}, err
	}
	return Day{Time: t}, nil
}

// Today returns the current local day.
func Today() Day {
	return NewDay(time.Now())
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return timeutil.FormatDate(d.Time)
}

// AddDays returns d moved by n calendar days.
func (d Day) AddDays(n int) Day {
	return Day{Time: timeutil.AddDays(d.Time, n)}
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.set(s)
}

func (d Day) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Day) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.set(s)
}

func (d *Day) set(s string) error {
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return fmt.Errorf("model: invalid date %q: %w", s, err)
	}
	*d = parsed
	return nil
}
