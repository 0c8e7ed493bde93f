// Package coord maps calendar days onto horizontal pixel offsets and back.
package coord

import (
	"math"
	"time"

	"tableflip.dev/roadmap/pkg/timeutil"
)

// Mapper converts between dates and pixels for one timeline range at one zoom
// level. Start is the epoch at x=0; End bounds the total width.
type Mapper struct {
	Start    time.Time
	End      time.Time
	DayWidth float64
	Zoom     float64
}

// New returns a Mapper over [start, end).
func New(start, end time.Time, dayWidth, zoom float64) Mapper {
	return Mapper{
		Start:    timeutil.Midnight(start),
		End:      timeutil.Midnight(end),
		DayWidth: dayWidth,
		Zoom:     zoom,
	}
}

// PixelsPerDay is the effective horizontal scale.
func (m Mapper) PixelsPerDay() float64 {
	return m.DayWidth * m.Zoom
}

// Days is the number of whole days in the range.
func (m Mapper) Days() int {
	return timeutil.DaysBetween(m.Start, m.End)
}

// DateToX returns the pixel offset of the start of t's day.
func (m Mapper) DateToX(t time.Time) float64 {
	return m.DayToX(timeutil.DaysBetween(m.Start, t))
}

// DayToX returns the pixel offset of the day n days after Start.
func (m Mapper) DayToX(n int) float64 {
	return float64(n) * m.PixelsPerDay()
}

// XToDay returns the whole-day index nearest to x.
func (m Mapper) XToDay(x float64) int {
	ppd := m.PixelsPerDay()
	if ppd <= 0 {
		return 0
	}
	return int(math.Round(x / ppd))
}

// XToDate snaps x to the nearest whole day.
func (m Mapper) XToDate(x float64) time.Time {
	return timeutil.AddDays(m.Start, m.XToDay(x))
}

// TotalWidth is the pixel width of the whole range.
func (m Mapper) TotalWidth() float64 {
	return m.DayToX(m.Days())
}

// Contains reports whether t falls in [Start, End).
func (m Mapper) Contains(t time.Time) bool {
	return !t.Before(m.Start) && t.Before(m.End)
}
